package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/brokeneck/brokeneck/cli/internal/config"
)

// backend is an in-memory GraphQL server holding users, groups and memberships.
type backend struct {
	mu      sync.Mutex
	users   map[string]string
	groups  map[string]string
	members map[string]map[string]bool
	ops     []string
	fail    map[string]string
}

type gqlRequest struct {
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func newBackend() *backend {
	return &backend{
		users:  map[string]string{"u1": "u1@example.com", "u2": "u2@example.com"},
		groups: map[string]string{"g1": "Admins", "g2": "Ops"},
		members: map[string]map[string]bool{
			"u1": {"g1": true, "g2": true},
		},
		fail: map[string]string{},
	}
}

func (b *backend) serve(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		b.mu.Lock()
		defer b.mu.Unlock()
		b.ops = append(b.ops, req.OperationName)

		if msg, ok := b.fail[req.OperationName]; ok {
			writeJSON(w, map[string]any{
				"data":   nil,
				"errors": []map[string]any{{"message": msg, "extensions": map[string]any{"code": "BAD_USER_INPUT"}}},
			})
			return
		}
		writeJSON(w, map[string]any{"data": b.handle(req)})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (b *backend) handle(req gqlRequest) map[string]any {
	str := func(key string) string { s, _ := req.Variables[key].(string); return s }
	input, _ := req.Variables["input"].(map[string]any)
	inputStr := func(key string) string { s, _ := input[key].(string); return s }

	switch req.OperationName {
	case "IntrospectType", "IntrospectInput":
		return map[string]any{"__type": nil}
	case "Ping":
		return map[string]any{"__typename": "Query"}
	case "LoadUser":
		email, ok := b.users[str("id")]
		if !ok {
			return map[string]any{"user": nil}
		}
		groups := []map[string]any{}
		for _, gid := range sortedKeys(b.members[str("id")]) {
			groups = append(groups, map[string]any{"id": gid, "name": b.groups[gid]})
		}
		return map[string]any{"user": map[string]any{"id": str("id"), "email": email, "groups": groups}}
	case "LoadGroup":
		name, ok := b.groups[str("id")]
		if !ok {
			return map[string]any{"group": nil}
		}
		users := []map[string]any{}
		for _, uid := range sortedKeys(b.users) {
			if b.members[uid][str("id")] {
				users = append(users, map[string]any{"id": uid, "email": b.users[uid]})
			}
		}
		return map[string]any{"group": map[string]any{"id": str("id"), "name": name, "users": users}}
	case "ListUsers":
		data := []map[string]any{}
		for _, uid := range sortedKeys(b.users) {
			data = append(data, map[string]any{"id": uid, "email": b.users[uid]})
		}
		return map[string]any{"users": map[string]any{"data": data}}
	case "ListGroups":
		data := []map[string]any{}
		for _, gid := range sortedKeys(b.groups) {
			data = append(data, map[string]any{"id": gid, "name": b.groups[gid]})
		}
		return map[string]any{"groups": map[string]any{"data": data}}
	case "DeleteUser":
		delete(b.users, inputStr("id"))
		delete(b.members, inputStr("id"))
		return map[string]any{"deleteUser": true}
	case "DeleteGroup":
		delete(b.groups, inputStr("id"))
		return map[string]any{"deleteGroup": true}
	case "EditUser":
		if email := inputStr("email"); email != "" {
			b.users[inputStr("id")] = email
		}
		return map[string]any{"editUser": map[string]any{"id": inputStr("id")}}
	case "AddUserToGroup":
		uid, gid := inputStr("userId"), inputStr("groupId")
		if b.members[uid] == nil {
			b.members[uid] = map[string]bool{}
		}
		b.members[uid][gid] = true
		return map[string]any{"addUserToGroup": true}
	case "RemoveUserFromGroup":
		delete(b.members[inputStr("userId")], inputStr("groupId"))
		return map[string]any{"removeUserFromGroup": true}
	}
	return map[string]any{}
}

func (b *backend) called(op string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range b.ops {
		if o == op {
			return true
		}
	}
	return false
}

func (b *backend) isMember(userID, groupID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.members[userID][groupID]
}

func (b *backend) email(userID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.users[userID]
	return e, ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// loggedIn points the config at srv through the environment.
func loggedIn(t *testing.T, srv *httptest.Server) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvServerURL, srv.URL)
	t.Setenv(config.EnvAPIKey, "bnk_test")
	t.Setenv(config.EnvLogLevel, "error")
}

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContainsAll(t *testing.T, s string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		require.Contains(t, s, p)
	}
}
