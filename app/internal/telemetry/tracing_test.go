package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), "cartd", "")

	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
