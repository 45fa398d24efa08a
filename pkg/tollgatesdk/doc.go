/*
Package tollgatesdk is a client for the Tollgate content service.

# Client vs Session

Client covers the public endpoints and the two-step login. A completed login
yields a Session, which carries the bearer token and, once established, the
symmetric session key used to open sealed content:

	client := tollgatesdk.NewClient("http://localhost:8080")

	challenge, err := client.Login(ctx, "alice@example.com", "secret")
	// the one-time code is delivered out of band
	session, err := client.VerifyOTP(ctx, challenge.UserID, code)

	// Wrap a fresh AES-256 key under the service's RSA public key.
	err = session.EstablishSessionKey(ctx)

	content, encrypted, err := session.PremiumContent(ctx)

# Errors

Non-2xx responses are returned as *APIError carrying the HTTP status and the
service's error code. Use IsCode to match on a code.
*/
package tollgatesdk
