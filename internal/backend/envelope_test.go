package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelopeSuccess(t *testing.T) {
	raw := []byte(`{"isSuccess":true,"message":"created","data":{"id":7,"name":"CS"},"httpStatusCode":201}`)

	result := decodeEnvelope[map[string]interface{}](201, raw)

	require.True(t, result.IsSuccess)
	assert.Equal(t, "created", result.Message)
	assert.Equal(t, 201, result.HTTPStatusCode)
	assert.EqualValues(t, 7, result.Data["id"])
}

func TestDecodeEnvelopeBarePayloadIsWrapped(t *testing.T) {
	raw := []byte(`{"id":7,"name":"CS"}`)

	result := decodeEnvelope[map[string]interface{}](200, raw)

	require.True(t, result.IsSuccess)
	assert.Empty(t, result.Message)
	assert.Equal(t, 200, result.HTTPStatusCode)
	assert.Equal(t, "CS", result.Data["name"])
}

func TestDecodeEnvelopeFailureEnvelope(t *testing.T) {
	raw := []byte(`{"isSuccess":false,"message":"name already exists","httpStatusCode":409}`)

	result := decodeEnvelope[struct{}](200, raw)

	assert.False(t, result.IsSuccess)
	assert.Equal(t, "name already exists", result.Message)
	assert.Equal(t, 409, result.HTTPStatusCode)
}

func TestDecodeEnvelopeNon2xxExtractsMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"record in use"}`, "record in use"},
		{"error field", `{"error":"bad request"}`, "bad request"},
		{"title field", `{"title":"conflict"}`, "conflict"},
		{"unparseable body", `<html>oops</html>`, "the operation could not be completed"},
		{"empty body", ``, "the operation could not be completed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := decodeEnvelope[struct{}](400, []byte(tt.body))
			assert.False(t, result.IsSuccess)
			assert.Equal(t, tt.want, result.Message)
			assert.Equal(t, 400, result.HTTPStatusCode)
		})
	}
}

func TestFailureCarriesMessageAndStatus(t *testing.T) {
	result := Failure[string]("network down", 0)
	assert.False(t, result.IsSuccess)
	assert.Equal(t, "network down", result.Message)
	assert.Empty(t, result.Data)
}
