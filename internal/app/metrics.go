package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics are business counters exported through the global meter provider. Until InitTelemetry installs a
// provider they are no-ops.
type metrics struct {
	deposits          metric.Int64Counter
	withdrawals       metric.Int64Counter
	ticketsSold       metric.Int64Counter
	attendances       metric.Int64Counter
	sessionsScheduled metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	meter := otel.Meter(serviceName)

	deposits, err := meter.Int64Counter("cinema.wallet.deposits", metric.WithDescription("Successful wallet deposits"))
	if err != nil {
		return nil, err
	}

	withdrawals, err := meter.Int64Counter("cinema.wallet.withdrawals", metric.WithDescription("Successful wallet withdrawals"))
	if err != nil {
		return nil, err
	}

	ticketsSold, err := meter.Int64Counter("cinema.tickets.sold", metric.WithDescription("Tickets purchased by type"))
	if err != nil {
		return nil, err
	}

	attendances, err := meter.Int64Counter("cinema.attendances", metric.WithDescription("Recorded session attendances"))
	if err != nil {
		return nil, err
	}

	sessionsScheduled, err := meter.Int64Counter("cinema.sessions.scheduled", metric.WithDescription("Sessions created"))
	if err != nil {
		return nil, err
	}

	return &metrics{
		deposits:          deposits,
		withdrawals:       withdrawals,
		ticketsSold:       ticketsSold,
		attendances:       attendances,
		sessionsScheduled: sessionsScheduled,
	}, nil
}

func (m *metrics) ticketSold(ctx context.Context, ticketType string) {
	m.ticketsSold.Add(ctx, 1, metric.WithAttributes(attribute.String("ticket.type", ticketType)))
}
