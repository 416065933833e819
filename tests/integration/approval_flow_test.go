//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "http://localhost:8080/api/v1"

// The full lifecycle against a running stack: a student registers, asks for
// club-creation rights, faculty approves, and the club plus capability flag
// appear. Run `docker-compose up` first.
func TestPermissionRequestApprovalFlow(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	client := &http.Client{}

	register := func(t *testing.T, username string) string {
		payload := map[string]string{
			"username": username,
			"email":    username + "@campus.edu",
			"password": "password123",
		}
		body, _ := json.Marshal(payload)
		resp, err := client.Post(baseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		return result["access_token"].(string)
	}

	doJSON := func(t *testing.T, method, path, token string, payload interface{}) (*http.Response, map[string]interface{}) {
		var body bytes.Buffer
		if payload != nil {
			require.NoError(t, json.NewEncoder(&body).Encode(payload))
		}
		req, err := http.NewRequest(method, baseURL+path, &body)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var result map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		return resp, result
	}

	aliceToken := register(t, "alice")
	bobToken := register(t, "bob")

	// bob starts as a student; promote him to faculty directly in the DB.
	_, err := env.DB.Exec(`UPDATE users SET role = 'faculty' WHERE username = 'bob'`)
	require.NoError(t, err)

	var requestID string

	t.Run("Alice Submits Club Request", func(t *testing.T) {
		resp, result := doJSON(t, http.MethodPost, "/permission-requests/", aliceToken, map[string]string{
			"permission_type": "club_creation",
			"reason":          "Chess Club\nWe play chess weekly",
		})

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "pending", result["status"])
		requestID = result["id"].(string)
	})

	t.Run("Bob Sees Pending Queue", func(t *testing.T) {
		resp, result := doJSON(t, http.MethodGet, "/permission-requests/", bobToken, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := result["data"].([]interface{})
		require.Len(t, data, 1)
	})

	t.Run("Bob Approves", func(t *testing.T) {
		resp, result := doJSON(t, http.MethodPost, fmt.Sprintf("/permission-requests/%s/approve", requestID), bobToken, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		request := result["request"].(map[string]interface{})
		assert.Equal(t, "approved", request["status"])

		provision := result["provision"].(map[string]interface{})
		assert.Equal(t, "created", provision["outcome"])
		assert.NotEmpty(t, provision["club_id"])
	})

	t.Run("Second Approve Conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, fmt.Sprintf("/permission-requests/%s/approve", requestID), bobToken, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Flag And Club Persisted", func(t *testing.T) {
		var canCreateClubs bool
		require.NoError(t, env.DB.QueryRow(`SELECT can_create_clubs FROM users WHERE username = 'alice'`).Scan(&canCreateClubs))
		assert.True(t, canCreateClubs)

		var clubName string
		var memberCount int
		require.NoError(t, env.DB.QueryRow(`SELECT name FROM clubs LIMIT 1`).Scan(&clubName))
		assert.Equal(t, "Chess Club", clubName)
		require.NoError(t, env.DB.QueryRow(`SELECT COUNT(*) FROM club_members`).Scan(&memberCount))
		assert.Equal(t, 1, memberCount)
	})

	t.Run("Alice Got Decision Notification", func(t *testing.T) {
		resp, result := doJSON(t, http.MethodGet, "/notifications/", aliceToken, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := result["data"].([]interface{})
		require.NotEmpty(t, data)

		found := false
		for _, raw := range data {
			n := raw.(map[string]interface{})
			if n["title"] == "Permission Request Approved" {
				found = true
			}
		}
		assert.True(t, found, "expected an approval notification")
	})

	t.Run("Alice Can Now Create Clubs", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, "/clubs/", aliceToken, map[string]string{
			"name":        "Go Club",
			"description": "We play Go too",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

// A student without the capability flag must be refused by the create-event
// endpoint, and a faculty reviewer must not be able to submit requests.
func TestPermissionBoundaries(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	client := &http.Client{}

	register := func(t *testing.T, username string) string {
		payload := map[string]string{
			"username": username,
			"email":    username + "@campus.edu",
			"password": "password123",
		}
		body, _ := json.Marshal(payload)
		resp, err := client.Post(baseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		return result["access_token"].(string)
	}

	carolToken := register(t, "carol")

	t.Run("Ungranted Student Cannot Create Event", func(t *testing.T) {
		payload := map[string]interface{}{
			"title":       "Underground Party",
			"description": "shh",
			"location":    "Basement",
			"start_date":  "2030-01-01T20:00:00Z",
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest(http.MethodPost, baseURL+"/events/", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+carolToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
