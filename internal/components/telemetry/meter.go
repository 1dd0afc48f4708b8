package telemetry

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MeterAPI forwards every report to an inner API and additionally records
// counts as otel gauges on the global meter provider.
//
// When no meter provider has been set up (see Setup) the gauges are no-ops.
type MeterAPI struct {
	inner API
	meter metric.Meter

	lock   sync.Mutex
	gauges map[string]metric.Int64Gauge
}

func NewMeterAPI(meterName string, inner API) *MeterAPI {
	return &MeterAPI{
		inner:  inner,
		meter:  otel.Meter(meterName),
		gauges: map[string]metric.Int64Gauge{},
	}
}

var instrumentNameReplacer = strings.NewReplacer(
	": ", ".",
	":", ".",
	" ", "_",
)

// instrumentName turns a report id into something otel accepts as an
// instrument name.
func instrumentName(id string) string {
	return instrumentNameReplacer.Replace(id)
}

func (m *MeterAPI) gauge(id string) (metric.Int64Gauge, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	name := instrumentName(id)
	gauge, ok := m.gauges[name]
	if ok {
		return gauge, nil
	}
	gauge, err := m.meter.Int64Gauge(name)
	if err != nil {
		return nil, err
	}
	m.gauges[name] = gauge
	return gauge, nil
}

func (m *MeterAPI) ReportBroken(id string, params ...any) {
	m.inner.ReportBroken(id, params...)
}

func (m *MeterAPI) ReportWarning(id string, params ...any) {
	m.inner.ReportWarning(id, params...)
}

func (m *MeterAPI) ReportDebug(msg string, params ...any) {
	m.inner.ReportDebug(msg, params...)
}

func (m *MeterAPI) ReportCount(id string, count int64) {
	m.inner.ReportCount(id, count)

	gauge, err := m.gauge(id)
	if err != nil {
		m.inner.ReportWarning("meter.gauge", err, id)
		return
	}
	gauge.Record(context.Background(), count)
}
