package http

import (
	"net/http"
	"testing"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing_NamesSpanAfterRoutePattern(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	router, cart, _ := newTestRouter(nil)
	cart.On("RemoveItem", mock.Anything, sessionID, mock.Anything).Return(&service.CartView{SessionID: sessionID}, nil)

	doRequest(t, router, http.MethodDelete, "/api/cart/items/c1", "", nil)
	doRequest(t, router, http.MethodDelete, "/api/cart/items/c2", "", nil)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, "DELETE /api/cart/items/{entryID}", span.Name())
	}
}
