package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/spf13/cobra"
)

// ErrNoBroker is returned when watching without RABBITMQ_URL.
var ErrNoBroker = errors.New("events watch needs RABBITMQ_URL")

// Cmd is the events command group
var Cmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect domain events",
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print domain events published to RabbitMQ",
	Long: `Subscribe to every domain event on the RabbitMQ exchange with a
private queue and print them as they arrive, until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if app.Config.RabbitMQURL == "" {
			return ErrNoBroker
		}

		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:       app.Config.RabbitMQURL,
			Transient: true,
			Logger:    cli.Logger(),
		}, eventbus.NewConsumerRegistry(cli.Logger()))
		if err != nil {
			return err
		}
		defer consumer.Close()

		if err := consumer.Subscribe(&printer{out: cmd.OutOrStdout()}); err != nil {
			return err
		}

		err = consumer.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// printer writes one line per consumed event.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *printer) EventTypes() []string {
	return []string{eventbus.AllEvents}
}

func (p *printer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("%s  %-22s %s %s",
		event.OccurredAt.Local().Format("2006-01-02 15:04:05"),
		event.RoutingKey,
		event.AggregateType,
		event.AggregateID,
	)
	if id := event.Metadata.CorrelationID; id != "" {
		line += "  correlation=" + id
	}
	_, err := fmt.Fprintln(p.out, line)
	return err
}

func init() {
	Cmd.AddCommand(watchCmd)
}
