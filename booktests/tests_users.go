package booktests

import (
	"github.com/bookstore-qa/bookstore-contract-tests/bookstore"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"
	"github.com/bookstore-qa/bookstore-contract-tests/servicedef"
)

const stepSignup = "sign up with valid credentials"

func userAuthScenario(env Env) scenario.Scenario {
	return scenario.Scenario{
		Name:  "user auth",
		Setup: seedIdentity,
		Steps: []scenario.Step{
			{Name: stepSignup, Ordinal: 1, Action: signupStep(env)},
			{
				Name:                  "sign up again with the same credentials",
				Ordinal:               2,
				DependsOnPriorSuccess: true,
				DependsOn:             stepSignup,
				Action:                duplicateSignupStep(env),
			},
			{
				Name:                  "sign up with the same email and a new password",
				Ordinal:               3,
				DependsOnPriorSuccess: true,
				DependsOn:             stepSignup,
				Action: func(t *scenario.T) {
					id := t.Identity()
					id.Password = uniqueSuffix()[:8]
					resp := t.RequireResponse(env.users(t).Signup(t.Context(), bookstore.Credentials(id)))
					expectStatus(t, resp, 400)
					expectBody(t, resp, "detail", servicedef.DetailEmailTaken)
				},
			},
			{
				Name:                  "log in with valid credentials",
				Ordinal:               4,
				DependsOnPriorSuccess: true,
				DependsOn:             stepSignup,
				Action:                loginStep(env),
			},
			{
				Name:    "log in without signing up",
				Ordinal: 5,
				Action: func(t *scenario.T) {
					st := scenario.NewState()
					resp := t.RequireResponse(env.users(t).Login(t.Context(), st, bookstore.Credentials(newIdentity())))
					expectStatus(t, resp, 400)
					expectStatusLine(t, resp, "HTTP/1.1 400 Bad Request")
					expectBody(t, resp, "detail", servicedef.DetailBadCredentials)
					t.ExpectTrue(!st.Has(scenario.KeyAuthToken), "no token is stored after a failed login")
				},
			},
			{
				Name:    "log in with missing parameters",
				Ordinal: 6,
				Action: func(t *scenario.T) {
					resp := t.RequireResponse(env.users(t).Login(t.Context(), scenario.NewState(), harness.FieldMap{}))
					expectStatus(t, resp, 422)
					expectStatusLine(t, resp, "HTTP/1.1 422 Unprocessable Entity")
					expectBody(t, resp, "detail[0].type", servicedef.IssueMissing)
					expectBody(t, resp, "detail[0].msg", servicedef.MsgFieldRequired)
					locations := validationLocations(resp)
					t.ExpectContains(locations, bookstore.FieldEmail, "missing fields reported")
					t.ExpectContains(locations, bookstore.FieldPassword, "missing fields reported")
				},
			},
		},
	}
}

func seedIdentity(st *scenario.State) error {
	st.SetIdentity(newIdentity())
	return nil
}

func signupStep(env Env) func(*scenario.T) {
	return func(t *scenario.T) {
		resp := t.RequireResponse(env.users(t).Signup(t.Context(), bookstore.Credentials(t.Identity())))
		expectStatus(t, resp, 200)
		expectBody(t, resp, "message", servicedef.MessageUserCreated)
	}
}

func duplicateSignupStep(env Env) func(*scenario.T) {
	return func(t *scenario.T) {
		resp := t.RequireResponse(env.users(t).Signup(t.Context(), bookstore.Credentials(t.Identity())))
		expectStatus(t, resp, 400)
		expectBody(t, resp, "detail", servicedef.DetailEmailTaken)
	}
}

func loginStep(env Env) func(*scenario.T) {
	return func(t *scenario.T) {
		resp := t.RequireResponse(env.users(t).Login(t.Context(), t.State(), bookstore.Credentials(t.Identity())))
		expectStatus(t, resp, 200)
		t.ExpectNotAbsent(resp.Field("access_token"), "access token")
		expectBody(t, resp, "token_type", servicedef.TokenTypeBearer)
		t.ExpectTrue(t.State().Has(scenario.KeyAuthToken), "token is stored in the session")
	}
}
