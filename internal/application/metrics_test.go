package application

import (
	"expvar"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func expvarCount(event string) int64 {
	if v, ok := authEvents.Get(event).(*expvar.Int); ok {
		return v.Value()
	}
	return 0
}

func TestCountAuth_FeedsBothExporters(t *testing.T) {
	prom := testutil.ToFloat64(authEventsTotal.WithLabelValues(evLogout))
	exp := expvarCount(evLogout)

	countAuth(evLogout)

	assert.Equal(t, prom+1, testutil.ToFloat64(authEventsTotal.WithLabelValues(evLogout)))
	assert.Equal(t, exp+1, expvarCount(evLogout))
}
