package publisher

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"tour-route-service/internal/domain"

	"github.com/nats-io/nats.go"
)

// Counters and connection-state hooks; satisfied by metrics.Collector.
type PublisherMetrics interface {
	EventPublishedInc()
	EventPublishErrInc()
	NATSSetConnected(connected bool)
}

// ItineraryPublisher emits a summary event for every stored itinerary so
// downstream presentation consumers can react without polling.
type ItineraryPublisher struct {
	nc          *nats.Conn
	logSubjects bool
	metrics     PublisherMetrics
}

func NewItineraryPublisher(url string, logSubjects bool, m PublisherMetrics) (*ItineraryPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("tour-route-service"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			log.Printf("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			log.Printf("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &ItineraryPublisher{nc: nc, logSubjects: logSubjects, metrics: m}, nil
}

func (p *ItineraryPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

type ItineraryGeneratedMessage struct {
	Mode                 string    `json:"mode"`
	Stops                []string  `json:"stops"`
	Legs                 int       `json:"legs"`
	SuccessfulLegs       int       `json:"successfulLegs"`
	TotalDurationSeconds int       `json:"totalDurationSeconds"`
	TotalDistanceMeters  int       `json:"totalDistanceMeters"`
	GeneratedAt          time.Time `json:"generatedAt"`
}

func (p *ItineraryPublisher) PublishGenerated(it *domain.Itinerary) error {
	subject := fmt.Sprintf("itinerary.generated.%s", subjectToken(string(it.Mode)))

	msg := ItineraryGeneratedMessage{
		Mode:                 string(it.Mode),
		Stops:                it.Stops,
		Legs:                 len(it.Legs),
		SuccessfulLegs:       it.SuccessfulLegs(),
		TotalDurationSeconds: it.TotalDurationSeconds,
		TotalDistanceMeters:  it.TotalDistanceMeters,
		GeneratedAt:          it.GeneratedAt,
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if p.logSubjects {
		log.Printf("nats publish subject=%s", subject)
	}

	err = p.nc.Publish(subject, b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.EventPublishErrInc()
		} else {
			p.metrics.EventPublishedInc()
		}
	}
	return err
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
