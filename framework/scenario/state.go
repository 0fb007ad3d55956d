package scenario

import (
	"sort"

	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Well-known session state keys.
const (
	KeyEmail             = "email"
	KeyPassword          = "password"
	KeyAuthToken         = "authToken"
	KeyCreatedResourceID = "createdResourceId"
	KeyDeletedResourceID = "deletedResourceId"
	KeyExpectedFields    = "expectedFields"
	KeyLiveResources     = "liveResources"
)

// Identity is the credentials of the user a scenario acts as.
type Identity struct {
	Email    string
	Password string
}

// State is the mutable session state of one scenario run. It is not safe for concurrent
// use, and it is never shared between scenarios.
//
// A key that has never been set is absent, which is different from being set to an
// empty string: reading an absent key returns a *MissingStateError.
type State struct {
	values        map[string]ldvalue.Value
	lastResponses map[string]harness.ResponseSummary
}

func NewState() *State {
	return &State{
		values:        make(map[string]ldvalue.Value),
		lastResponses: make(map[string]harness.ResponseSummary),
	}
}

// Set stores a value, replacing any previous value.
func (s *State) Set(key string, value interface{}) {
	s.values[key] = harness.ToValue(value)
}

// Get returns a value, or a *MissingStateError if the key was never set or was cleared.
func (s *State) Get(key string) (ldvalue.Value, error) {
	v, ok := s.values[key]
	if !ok {
		return ldvalue.Null(), &MissingStateError{Key: key}
	}
	return v, nil
}

func (s *State) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s *State) Clear(key string) {
	delete(s.values, key)
}

// Keys returns the keys that currently have values, sorted.
func (s *State) Keys() []string {
	ret := make([]string, 0, len(s.values))
	for k := range s.values {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

func (s *State) getString(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}
	return v.StringValue(), nil
}

func (s *State) SetIdentity(id Identity) {
	s.Set(KeyEmail, id.Email)
	s.Set(KeyPassword, id.Password)
}

// Identity returns the scenario's credentials. Both the email and password must have
// been set.
func (s *State) Identity() (Identity, error) {
	email, err := s.getString(KeyEmail)
	if err != nil {
		return Identity{}, err
	}
	password, err := s.getString(KeyPassword)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Email: email, Password: password}, nil
}

// SetAuthToken stores the value to send in the Authorization header.
func (s *State) SetAuthToken(token string) {
	s.Set(KeyAuthToken, token)
}

func (s *State) AuthToken() (string, error) {
	return s.getString(KeyAuthToken)
}

// AuthTokenIfSet returns the auth token if there is one. Callers that can legitimately
// make anonymous requests use this instead of AuthToken.
func (s *State) AuthTokenIfSet() ldvalue.OptionalString {
	if v, ok := s.values[KeyAuthToken]; ok {
		return ldvalue.NewOptionalString(v.StringValue())
	}
	return ldvalue.OptionalString{}
}

func (s *State) SetCreatedResourceID(id string) {
	s.Set(KeyCreatedResourceID, id)
}

func (s *State) CreatedResourceID() (string, error) {
	return s.getString(KeyCreatedResourceID)
}

// MarkResourceDeleted clears the created resource ID, so that it cannot be used again
// for reads or updates, and remembers it as the deleted resource ID. The resource also
// stops being tracked as live.
func (s *State) MarkResourceDeleted(id string) {
	if current, ok := s.values[KeyCreatedResourceID]; ok && current.StringValue() == id {
		s.Clear(KeyCreatedResourceID)
	}
	s.Set(KeyDeletedResourceID, id)
	if live, ok := s.values[KeyLiveResources]; ok {
		s.values[KeyLiveResources] = live.Transform(func(_ int, key string, v ldvalue.Value) (ldvalue.Value, bool) {
			return v, key != id
		})
	}
}

// SetFields stores a field map under a key.
func (s *State) SetFields(key string, fields harness.FieldMap) {
	s.values[key] = fields.AsValue()
}

// Fields returns a field map stored with SetFields. The keys come back sorted.
func (s *State) Fields(key string) (harness.FieldMap, error) {
	v, err := s.Get(key)
	if err != nil {
		return harness.FieldMap{}, err
	}
	m, ok := harness.FieldMapFromValue(v)
	if !ok {
		return harness.FieldMap{}, configError("session state value %q is not a field map", key)
	}
	return m, nil
}

// SetExpectedFields stores the field values that the service should now report for the
// resource the scenario is working on.
func (s *State) SetExpectedFields(fields harness.FieldMap) {
	s.SetFields(KeyExpectedFields, fields)
}

func (s *State) ExpectedFields() (harness.FieldMap, error) {
	return s.Fields(KeyExpectedFields)
}

// TrackResource records a live resource created in this session along with a label,
// such as a book's name, that a listing of all resources should contain. Tracking the
// same ID again replaces its label.
func (s *State) TrackResource(id, label string) {
	b := ldvalue.ObjectBuild()
	if live, ok := s.values[KeyLiveResources]; ok {
		for _, k := range live.Keys() {
			b.Set(k, live.GetByKey(k))
		}
	}
	b.Set(id, ldvalue.String(label))
	s.values[KeyLiveResources] = b.Build()
}

// TrackedResources returns the labels of the live resources, keyed by ID. Once anything
// has been tracked the result is never a *MissingStateError, even after every resource
// has been deleted.
func (s *State) TrackedResources() (map[string]string, error) {
	live, err := s.Get(KeyLiveResources)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]string, live.Count())
	for _, k := range live.Keys() {
		ret[k] = live.GetByKey(k).StringValue()
	}
	return ret, nil
}

// DeletedResourceID returns the ID of the most recently deleted resource. It is only
// meant for steps that verify a deleted resource can no longer be read.
func (s *State) DeletedResourceID() (string, error) {
	return s.getString(KeyDeletedResourceID)
}

func (s *State) RecordResponse(stepName string, summary harness.ResponseSummary) {
	s.lastResponses[stepName] = summary
}

// LastResponse returns the last response captured by the named step.
func (s *State) LastResponse(stepName string) (harness.ResponseSummary, error) {
	r, ok := s.lastResponses[stepName]
	if !ok {
		return harness.ResponseSummary{}, &MissingStateError{Key: "response of " + stepName}
	}
	return r, nil
}
