package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
  "data": {
    "searchDashClustersByAll": {
      "elements": [
        {"items": [
          {"item": {"entityResult": {
            "entityUrn": "urn:li:fsd_entityResultViewModel:(urn:li:fsd_profile:ACoAAA1,SEARCH_SRP,DEFAULT)",
            "title": {"text": "Jane Doe"},
            "primarySubtitle": {"text": "CTO at Acme"},
            "secondarySubtitle": {"text": "Berlin"},
            "entityCustomTrackingInfo": {"memberDistance": "DISTANCE_2"}
          }}},
          {"item": {}},
          {"item": {"entityResult": {
            "entityUrn": "urn:li:fsd_entityResultViewModel:(urn:li:fsd_profile:ACoAAA2,SEARCH_SRP,DEFAULT)",
            "title": {"text": "John Roe"}
          }}}
        ]}
      ]
    }
  }
}`

type fakeVoyager struct {
	t *testing.T

	mu            sync.Mutex
	loginResult   string
	loginStatus   int
	loginPosts    int
	searchQueries []string
	messages      []conversationCreatePayload
	invites       []invitationPayload
	connectStatus int
	csrfSeen      []string
}

func newFakeVoyager(t *testing.T) (*fakeVoyager, *httptest.Server) {
	f := &fakeVoyager{t: t, loginResult: "PASS", loginStatus: http.StatusOK, connectStatus: http.StatusOK}
	mux := http.NewServeMux()

	mux.HandleFunc("/uas/authenticate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "ajax:42", Path: "/"})
			w.WriteHeader(http.StatusOK)
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ajax:42", r.PostForm.Get("JSESSIONID"))
		f.mu.Lock()
		f.loginPosts++
		status := f.loginStatus
		f.mu.Unlock()
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"login_result": f.loginResult})
	})

	mux.HandleFunc("/voyager/api/graphql", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.searchQueries = append(f.searchQueries, r.URL.RawQuery)
		f.csrfSeen = append(f.csrfSeen, r.Header.Get("Csrf-Token"))
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	})

	mux.HandleFunc("/voyager/api/messaging/conversations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "create", r.URL.Query().Get("action"))
		var p conversationCreatePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		f.mu.Lock()
		f.messages = append(f.messages, p)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("/voyager/api/voyagerRelationshipsDashMemberRelationships", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "verifyQuotaAndCreateV2", r.URL.Query().Get("action"))
		var p invitationPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		f.mu.Lock()
		f.invites = append(f.invites, p)
		status := f.connectStatus
		f.mu.Unlock()
		w.WriteHeader(status)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func newTestClient(t *testing.T, srv *httptest.Server, breakerFailures int) *Client {
	t.Helper()
	c, err := New(context.Background(), Config{
		Username:           "me@example.com",
		Password:           "secret",
		BaseURL:            srv.URL,
		BreakerMaxFailures: breakerFailures,
		BreakerTimeout:     time.Minute,
	})
	require.NoError(t, err)
	return c
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{BaseURL: "http://localhost"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestNew_LoginRejected(t *testing.T) {
	f, srv := newFakeVoyager(t)
	f.loginResult = "BAD_USERNAME_OR_PASSWORD"

	_, err := New(context.Background(), Config{Username: "u", Password: "p", BaseURL: srv.URL})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "BAD_USERNAME_OR_PASSWORD", authErr.Result)
}

func TestSearchPeople(t *testing.T) {
	f, srv := newFakeVoyager(t)
	c := newTestClient(t, srv, 0)

	people, err := c.SearchPeople(context.Background(), SearchParams{
		Keywords:      "solar panels",
		Regions:       []string{"urn:li:fs_geo:102713980"},
		Industries:    []string{""},
		NetworkDepths: []string{"F", "O"},
		Limit:         10,
	})
	require.NoError(t, err)

	require.Len(t, people, 2)
	assert.Equal(t, Person{
		URNID:    "ACoAAA1",
		Name:     "Jane Doe",
		JobTitle: "CTO at Acme",
		Location: "Berlin",
		Distance: "DISTANCE_2",
	}, people[0])
	assert.Equal(t, Person{URNID: "ACoAAA2", Name: "John Roe"}, people[1])

	require.Len(t, f.searchQueries, 1)
	q := f.searchQueries[0]
	assert.Contains(t, q, "keywords:solar%20panels")
	assert.Contains(t, q, "(key:geoUrn,value:List(102713980))")
	assert.Contains(t, q, "(key:network,value:List(F,O))")
	assert.NotContains(t, q, "key:industry")
	assert.Equal(t, []string{"ajax:42"}, f.csrfSeen)
}

func TestSearchPeople_RespectsLimit(t *testing.T) {
	_, srv := newFakeVoyager(t)
	c := newTestClient(t, srv, 0)

	people, err := c.SearchPeople(context.Background(), SearchParams{Keywords: "x", Limit: 1})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "ACoAAA1", people[0].URNID)
}

func TestSendMessage(t *testing.T) {
	f, srv := newFakeVoyager(t)
	c := newTestClient(t, srv, 0)

	require.NoError(t, c.SendMessage(context.Background(), []string{"ACoAAA1"}, "Hello Jane"))

	require.Len(t, f.messages, 1)
	msg := f.messages[0]
	assert.Equal(t, []string{"ACoAAA1"}, msg.ConversationCreate.Recipients)
	assert.Equal(t, "MEMBER_TO_MEMBER", msg.ConversationCreate.Subtype)
	assert.Equal(t, "Hello Jane", msg.ConversationCreate.EventCreate.Value["com.linkedin.voyager.messaging.create.MessageCreate"].Body)
}

func TestSendMessage_NoRecipients(t *testing.T) {
	_, srv := newFakeVoyager(t)
	c := newTestClient(t, srv, 0)

	assert.Error(t, c.SendMessage(context.Background(), nil, "hi"))
}

func TestAddConnection(t *testing.T) {
	f, srv := newFakeVoyager(t)
	c := newTestClient(t, srv, 0)

	require.NoError(t, c.AddConnection(context.Background(), "ACoAAA2", ""))

	require.Len(t, f.invites, 1)
	assert.Equal(t, "urn:li:fsd_profile:ACoAAA2", f.invites[0].Invitee.InviteeUnion.MemberProfile)
	assert.Empty(t, f.invites[0].CustomMessage)
}

func TestAddConnection_UnexpectedStatus(t *testing.T) {
	f, srv := newFakeVoyager(t)
	f.connectStatus = http.StatusTooManyRequests
	c := newTestClient(t, srv, 0)

	err := c.AddConnection(context.Background(), "ACoAAA2", "")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "connect", statusErr.Op)
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	f, srv := newFakeVoyager(t)
	f.connectStatus = http.StatusInternalServerError
	c := newTestClient(t, srv, 2)

	for i := 0; i < 2; i++ {
		var statusErr *StatusError
		require.ErrorAs(t, c.AddConnection(context.Background(), "A", ""), &statusErr)
	}

	err := c.AddConnection(context.Background(), "A", "")
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "open breaker must not reach the server")
	assert.Len(t, f.invites, 2)
}

func TestProfileIDFromEntityURN(t *testing.T) {
	tests := map[string]string{
		"urn:li:fsd_entityResultViewModel:(urn:li:fsd_profile:ACoAAA1,SEARCH_SRP,DEFAULT)": "ACoAAA1",
		"urn:li:fsd_profile:ACoAAA9": "ACoAAA9",
		"":                          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, profileIDFromEntityURN(in), "input %q", in)
	}
}

func TestPeopleSearchQuery_NoFilters(t *testing.T) {
	q := peopleSearchQuery(SearchParams{Keywords: "a&b (c)"})

	assert.True(t, strings.HasPrefix(q, "variables=(start:0,"))
	assert.Contains(t, q, "queryParameters:List((key:resultType,value:List(PEOPLE)))")
	assert.Contains(t, q, "keywords:a%26b%20%28c%29,")
	assert.True(t, strings.HasSuffix(q, "&queryId="+peopleSearchQueryID))
}
