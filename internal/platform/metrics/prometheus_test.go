package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsManager_CountersAreRegistered(t *testing.T) {
	m := NewMetricsManager("storefront_test")

	m.Checkout("ACCEPTED")
	m.Checkout("ACCEPTED")
	m.CartMutation("REMOVE", "ok")
	m.MembershipLookup("cache")
	m.BackendError("get_cart")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CheckoutsTotal.WithLabelValues("ACCEPTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartMutationsTotal.WithLabelValues("REMOVE", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MembershipLookups.WithLabelValues("cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendRequestErrors.WithLabelValues("get_cart")))
}

func TestMetricsManager_ObserveHTTPRequest(t *testing.T) {
	m := NewMetricsManager("storefront_test")

	m.ObserveHTTPRequest("/api/cart", "GET", 200, 0.05)
	m.ObserveHTTPRequest("/api/cart", "GET", 200, 0.10)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/cart", "GET", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestLatency))
}

func TestMetricsManager_NewServer(t *testing.T) {
	m := NewMetricsManager("storefront_test")

	assert.Nil(t, m.NewServer(""))
	assert.Equal(t, ":9095", m.NewServer("9095").Addr)
}
