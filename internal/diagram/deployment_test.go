package diagram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uml-generator/internal/models"
)

func TestDeploymentLabelFollowsTupleArity(t *testing.T) {
	var m models.DeploymentModel
	require.NoError(t, json.Unmarshal([]byte(`{
		"components": [
			{"name": "Web Server", "services": ["API Gateway", "Auth Service"]},
			{"name": "DB Server", "services": ["PostgreSQL"]}
		],
		"relationships": [["Web Server", "DB Server", "JDBC"], ["Web Server", "DB Server"]]
	}`), &m))

	out := Deployment(m)

	assert.Contains(t, out, "node \"Web Server\" as Web_Server {\n  [API Gateway]\n  [Auth Service]\n}\n")
	assert.Contains(t, out, "node \"DB Server\" as DB_Server {\n  [PostgreSQL]\n}\n")
	assert.Contains(t, out, "Web_Server --> DB_Server : JDBC\n")
	assert.Contains(t, out, "Web_Server --> DB_Server\n")
}
