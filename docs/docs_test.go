package docs

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type openAPI struct {
	Info        map[string]any            `json:"info"`
	Paths       map[string]map[string]any `json:"paths"`
	Definitions map[string]any            `json:"definitions"`
}

func TestRegistradoCoincideConArchivo(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)
	var registered openAPI
	require.NoError(t, json.Unmarshal([]byte(raw), &registered))

	file, err := os.ReadFile("swagger.json")
	require.NoError(t, err)
	var served openAPI
	require.NoError(t, json.Unmarshal(file, &served))

	assert.Equal(t, served.Paths, registered.Paths)
	assert.Equal(t, served.Definitions, registered.Definitions)
	assert.Equal(t, "Frutería Olga API", registered.Info["title"])
}
