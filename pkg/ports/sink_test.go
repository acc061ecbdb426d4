package ports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/turtle/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestMultiSink(t *testing.T) {
	var a, b []string
	boom := errors.New("boom")

	sink := ports.MultiSink{
		ports.SinkFunc(func(_ context.Context, text string) error {
			a = append(a, text)
			return nil
		}),
		nil,
		ports.SinkFunc(func(_ context.Context, text string) error {
			b = append(b, text)
			return boom
		}),
	}

	err := sink.Write(context.Background(), "1,2,EAST")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"1,2,EAST"}, a, "first sink still receives the report")
	assert.Equal(t, []string{"1,2,EAST"}, b)
}
