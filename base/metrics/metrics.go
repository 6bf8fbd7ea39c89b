/*Package metrics wraps datadog-go to facilitate metric recording
Naming convention of metric keys:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-market/goapi/base/env"
	"github.com/x-market/goapi/base/log"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"

	// ddRate is the rate to pass metrics to the datadog agent. 1 means always
	ddRate = 1
	// buffer this many counters before flushing to statsd
	bufferMetrics = 10
	ddPort        = 8125
)

var (
	initOnce sync.Once
	ddClient statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

func initDDClient() {
	addr := fmt.Sprintf("%s:%d", viper.GetString("datadog_host"), ddPort)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")

	cli, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		// metrics must never take the service down, fall back to debug logs
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Warn("can't talk to datadog agent, metrics are logged only")
		ddClient = &logClient{}
		return
	}
	ddClient = cli
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	tags := []string{
		// using host removes all tags associated with host
		// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
		"host:",
		"pod:" + env.PodName(),
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	return &metricsImpl{
		pkgName: pkgName,
		tags:    tags,
	}
}

type metricsImpl struct {
	pkgName string
	tags    []string
}

func (mt *metricsImpl) key(key string) string {
	return mt.pkgName + "." + key
}

// parseTag converts ("k1", "v1", "k2", "v2") into datadog's "k:v" form
func (mt *metricsImpl) parseTag(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, 0, len(mt.tags)+len(tags)/2)
	arr = append(arr, mt.tags...)
	for i := 0; i < len(tags); i += 2 {
		arr = append(arr, tags[i]+":"+tags[i+1])
	}
	return arr
}

// BumpAvg bumps the average for the given key.
func (mt *metricsImpl) BumpAvg(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	if err := ddClient.Gauge(mt.key(key), val, mt.parseTag(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpAvg"}).Error("Bump fail")
	}
}

// BumpSum bumps the sum for the given key.
func (mt *metricsImpl) BumpSum(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	if err := ddClient.Count(mt.key(key), int64(val), mt.parseTag(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpSum"}).Error("Bump fail")
	}
}

// BumpHistogram bumps the histogram for the given key.
func (mt *metricsImpl) BumpHistogram(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	if err := ddClient.Histogram(mt.key(key), val, mt.parseTag(tags), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpHistogram"}).Error("Bump fail")
	}
}

// BumpTime starts a timer. Calling End() on the returned value records the
// duration under the given key:
//
//	defer met.BumpTime("my.function.time").End()
func (mt *metricsImpl) BumpTime(key string, tags ...string) Ender {
	initOnce.Do(initDDClient)
	return &timeTracker{
		start: time.Now(),
		key:   mt.key(key),
		tags:  mt.parseTag(tags),
	}
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	dur := float64(time.Since(t.start)) / float64(time.Millisecond)
	if err := ddClient.TimeInMilliseconds(t.key, dur, t.tags, ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": t.key, "val": dur, "func": "BumpTime"}).Error("Bump fail")
	}
}
