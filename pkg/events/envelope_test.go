package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrame(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{
			name: "valid frame",
			raw:  `{"event":"state_change","data":{"component_id":"c1","state":5}}`,
			want: ChannelStateChange,
		},
		{
			name: "frame without data",
			raw:  `{"event":"connect"}`,
			want: ChannelConnect,
		},
		{
			name:    "missing channel name",
			raw:     `{"data":{}}`,
			wantErr: ErrEmptyChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := DecodeFrame([]byte(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, frame.Event)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeFrame([]byte(`{"event":`))
		assert.Error(t, err)
	})
}

func TestEncodeFrameRoundTrip(t *testing.T) {
	raw, err := EncodeFrame(ChannelError, ErrorMessage{Message: "boom"})
	require.NoError(t, err)

	frame, err := DecodeFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, ChannelError, frame.Event)

	var msg ErrorMessage
	require.NoError(t, json.Unmarshal(frame.Data, &msg))
	assert.Equal(t, "boom", msg.Message)
}

func TestVariantValidation(t *testing.T) {
	assert.NoError(t, (&EventResponse{EventID: "foo"}).Validate())
	assert.ErrorIs(t, (&EventResponse{}).Validate(), ErrMissingEventID)

	assert.NoError(t, (&StateChange{ComponentID: "c1"}).Validate())
	assert.ErrorIs(t, (&StateChange{}).Validate(), ErrMissingComponentID)
}

func TestResponseEvent(t *testing.T) {
	assert.Equal(t, "foo_response", ResponseEvent("foo"))
	// A name already carrying the suffix just gets another one; the
	// convention is purely textual.
	assert.Equal(t, "foo_response_response", ResponseEvent("foo_response"))
}

func TestComponentEnvelope(t *testing.T) {
	t.Run("flattens payload beside the tag", func(t *testing.T) {
		raw, err := ComponentEnvelope("foo", map[string]interface{}{"x": 1})
		require.NoError(t, err)
		assert.JSONEq(t, `{"event_id":"foo","x":1}`, string(raw))
	})

	t.Run("tag wins over payload key", func(t *testing.T) {
		raw, err := ComponentEnvelope("foo", map[string]interface{}{"event_id": "bar"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"event_id":"foo"}`, string(raw))
	})

	t.Run("nil payload", func(t *testing.T) {
		raw, err := ComponentEnvelope("foo", nil)
		require.NoError(t, err)
		assert.JSONEq(t, `{"event_id":"foo"}`, string(raw))
	})

	t.Run("empty event id rejected", func(t *testing.T) {
		_, err := ComponentEnvelope("", nil)
		assert.ErrorIs(t, err, ErrMissingEventID)
	})
}
