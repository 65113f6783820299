/*
Package maintapi provides a client for the OCP intervention-management
REST API's authentication surface.

# Overview

The package is organized around a single Client that owns the base URL and
HTTP transport. Authentication flows are initiated through Client methods;
responses are parsed into closed, typed results at this boundary so callers
pattern-match on concrete types instead of probing optional JSON fields.

	client := maintapi.NewClient("https://ocp.example.com")

	success, err := client.SignIn(ctx, "a@b.com", "secret")
	if err != nil {
		var stepUp *maintapi.StepUpRequiredError
		if errors.As(err, &stepUp) {
			// Two-factor step-up required: redeem stepUp.SessionID with
			// a one-time code before a session is granted.
			result, err := client.VerifyTwoFactor(ctx, code, stepUp.SessionID)
			...
		}
	}

# Error Handling

Three kinds of failure can come out of any call:

  - *StepUpRequiredError: sign-in was accepted but requires a second factor
  - *APIError: the server rejected the request and supplied a message
  - wrapped transport errors: the request never completed (connection
    failure, cancelled context, unparseable body)

Callers are expected to surface APIError messages verbatim and map transport
errors to a generic connection message; nothing in this package retries.

# Cancellation

Every method takes a context and the underlying request is bound to it, so
an abandoned flow (the caller moved on) aborts its in-flight request instead
of leaking a goroutine that reports into nowhere.
*/
package maintapi
