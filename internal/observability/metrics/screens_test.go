package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/viewmodel"
)

type point struct {
	kind  string
	name  string
	value float64
	tags  map[string]string
}

type captureSink struct {
	mu     sync.Mutex
	points []point
}

func (s *captureSink) add(p point) {
	s.mu.Lock()
	s.points = append(s.points, p)
	s.mu.Unlock()
}

func (s *captureSink) Count(name string, value int64, tags map[string]string) {
	s.add(point{kind: "count", name: name, value: float64(value), tags: tags})
}

func (s *captureSink) Gauge(name string, value float64, tags map[string]string) {
	s.add(point{kind: "gauge", name: name, value: value, tags: tags})
}

func (s *captureSink) Timing(name string, value time.Duration, tags map[string]string) {
	s.add(point{kind: "timing", name: name, value: float64(value.Milliseconds()), tags: tags})
}

func TestScreenRecorder_ListRefreshed(t *testing.T) {
	sink := &captureSink{}
	r := NewScreenRecorder(sink)

	r.ListRefreshed("Services", 40*time.Millisecond, nil)
	r.ListRefreshed("Services", 0, apperrors.Transport(errors.New("dial"), apperrors.MsgUnreachable))

	require.Len(t, sink.points, 3)
	assert.Equal(t, point{kind: "count", name: MetricListRefresh, value: 1,
		tags: map[string]string{"module": "Services", "result": ResultSuccess}}, sink.points[0])
	assert.Equal(t, MetricListDuration, sink.points[1].name)
	assert.Equal(t, float64(40), sink.points[1].value)
	assert.Equal(t, map[string]string{
		"module": "Services", "result": ResultError, "error_class": "transport",
	}, sink.points[2].tags)
}

func TestScreenRecorder_FormSubmittedAndDenied(t *testing.T) {
	sink := &captureSink{}
	r := NewScreenRecorder(sink)

	r.FormSubmitted("Vouchers", viewmodel.FormEdit, time.Second, apperrors.Rejected(422, "bad"))
	r.PermissionDenied("Vouchers", domainauth.ActionDelete)

	require.Len(t, sink.points, 3)
	assert.Equal(t, map[string]string{
		"module": "Vouchers", "mode": string(viewmodel.FormEdit),
		"result": ResultError, "error_class": "rejected",
	}, sink.points[0].tags)
	assert.Equal(t, "timing", sink.points[1].kind)
	assert.Equal(t, point{kind: "count", name: MetricPermissionDenied, value: 1,
		tags: map[string]string{"module": "Vouchers", "action": "delete"}}, sink.points[2])
}

func TestNewScreenRecorder_NilSink(t *testing.T) {
	r := NewScreenRecorder(nil)
	assert.NotPanics(t, func() {
		r.ListRefreshed("Services", time.Millisecond, nil)
		r.PermissionDenied("Services", domainauth.ActionView)
	})
}

func TestCloneTags(t *testing.T) {
	assert.Nil(t, CloneTags(nil))
	src := map[string]string{"a": "1"}
	cp := CloneTags(src)
	cp["a"] = "2"
	assert.Equal(t, "1", src["a"])
}
