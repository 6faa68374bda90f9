package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oidcrypt/oidcrypt/internal/audit"
	"github.com/oidcrypt/oidcrypt/internal/configs"
	"github.com/oidcrypt/oidcrypt/internal/crypt"
	"github.com/oidcrypt/oidcrypt/internal/envelope"
	kerrors "github.com/oidcrypt/oidcrypt/internal/errors"
	"github.com/oidcrypt/oidcrypt/internal/jwk"
	logger "github.com/oidcrypt/oidcrypt/internal/logging"
	"github.com/oidcrypt/oidcrypt/internal/store"
	"github.com/oidcrypt/oidcrypt/internal/transport"
)

// GenerateKeyOptions configures the key generation workflow.
type GenerateKeyOptions struct {
	// Name is the account under which the private JWK is stored.
	Name     string
	Password []byte
	Force    bool
}

// GenerateKeyResult contains the public half of the generated key.
type GenerateKeyResult struct {
	Name       string
	PublicJWK  string
	Thumbprint string
}

// GenerateKey creates an RSA signing key set, stores the private JWK as an
// envelope under Name and returns the public JWK.
//
// Returns ErrAccountExists if Name is taken and Force is not set.
func GenerateKey(ctx context.Context, opts GenerateKeyOptions) (*GenerateKeyResult, error) {
	if err := store.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if len(opts.Password) == 0 {
		return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	set, err := jwk.GenerateSigningKeySet()
	if err != nil {
		return nil, err
	}

	pub, err := jwk.Import(set.Public)
	if err != nil {
		return nil, err
	}
	thumbprint, err := jwk.Thumbprint(pub)
	pub.Release()
	if err != nil {
		return nil, err
	}

	text, err := envelope.Encode([]byte(set.Private), opts.Password)
	if err != nil {
		return nil, err
	}
	if err := env.store.Write(opts.Name, text+"\n", opts.Force); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpKeygen)
	entry.Account = opts.Name
	entry.Backend = env.config.Storage.Backend
	entry.Thumbprint = thumbprint
	entry.Forced = opts.Force
	audit.Log(entry)

	return &GenerateKeyResult{
		Name:       opts.Name,
		PublicJWK:  set.Public,
		Thumbprint: thumbprint,
	}, nil
}

// ImportKeyOptions configures the key import workflow. Exactly one of JWK
// and URI is set.
type ImportKeyOptions struct {
	// JWK is the key as JSON text.
	JWK string

	// URI locates a JWKS holding exactly one key.
	URI string

	// CertPath overrides http.cert_path from the config.
	CertPath string

	// Fetcher overrides the HTTPS client built from the config.
	Fetcher jwk.Fetcher

	// Logger receives request and retry logs from the HTTPS client.
	Logger logger.Logger

	// StoreAs, when set, stores the private JWK as an envelope under this
	// account so it can sign assertions. The key must be private.
	StoreAs  string
	Password []byte
	Force    bool
}

// ImportKeyResult describes an imported key. Only the public part is returned.
type ImportKeyResult struct {
	PublicJWK  string
	KeyType    string
	KeyID      string
	Thumbprint string

	// HadPrivate reports whether the input carried private key material.
	HadPrivate bool

	// StoredAs is the account the private key was written to, if any.
	StoredAs string
}

// ImportKey parses a JWK (or an RSA PEM private key) from text, or resolves
// it from a remote key set, and reports its public part.
//
// Returns ErrJWKImport for unparsable keys.
// Returns ErrNoMatchingKey or ErrAmbiguousKeySet when the remote set does not
// hold exactly one key.
func ImportKey(ctx context.Context, opts ImportKeyOptions) (*ImportKeyResult, error) {
	if (opts.JWK == "") == (opts.URI == "") {
		return nil, fmt.Errorf("%w: exactly one of jwk text or uri", kerrors.ErrNilArgument)
	}

	if opts.StoreAs != "" {
		if err := store.ValidateName(opts.StoreAs); err != nil {
			return nil, err
		}
		if len(opts.Password) == 0 {
			return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
		}
	}

	var key *jwk.Key
	var err error
	switch {
	case opts.URI != "":
		key, err = importFromURI(ctx, opts)
	case jwk.IsPEM([]byte(opts.JWK)):
		key, err = jwk.ImportPEM([]byte(opts.JWK))
	default:
		key, err = jwk.Import(opts.JWK)
	}
	if err != nil {
		return nil, err
	}
	defer key.Release()

	public, err := jwk.ExportSig(key, false)
	if err != nil {
		return nil, err
	}
	thumbprint, err := jwk.Thumbprint(key)
	if err != nil {
		return nil, err
	}

	result := &ImportKeyResult{
		PublicJWK:  public,
		KeyType:    key.KeyType(),
		KeyID:      key.KeyID(),
		Thumbprint: thumbprint,
		HadPrivate: !key.IsPublic(),
	}
	if opts.StoreAs != "" {
		if err := storeImportedKey(key, thumbprint, opts); err != nil {
			return nil, err
		}
		result.StoredAs = opts.StoreAs
	}
	return result, nil
}

func storeImportedKey(key *jwk.Key, thumbprint string, opts ImportKeyOptions) error {
	if key.IsPublic() {
		return fmt.Errorf("%w: a public key cannot be stored for signing", kerrors.ErrJWKImport)
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	private, err := jwk.ExportSig(key, true)
	if err != nil {
		return err
	}

	text, err := envelope.Encode([]byte(private), opts.Password)
	if err != nil {
		return err
	}
	if err := env.store.Write(opts.StoreAs, text+"\n", opts.Force); err != nil {
		return err
	}

	entry := audit.NewEntry(audit.OpImport)
	entry.Account = opts.StoreAs
	entry.Backend = env.config.Storage.Backend
	entry.KeyID = key.KeyID()
	entry.Thumbprint = thumbprint
	entry.Forced = opts.Force
	audit.Log(entry)
	return nil
}

func importFromURI(ctx context.Context, opts ImportKeyOptions) (*jwk.Key, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	certPath := opts.CertPath
	if certPath == "" {
		certPath = cfg.HTTP.CertPath
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = &transport.Client{
			RetryMax: cfg.Retries(),
			Timeout:  cfg.Timeout(),
			Logger:   opts.Logger,
		}
	}

	return jwk.NewResolver(fetcher).ImportFromURI(ctx, opts.URI, certPath)
}

// SignAssertionOptions configures the client assertion workflow.
type SignAssertionOptions struct {
	// Name is the account holding the private JWK written by GenerateKey.
	Name     string
	Password []byte

	// ClientID becomes both iss and sub.
	ClientID string

	// Audience is the token endpoint of the issuer.
	Audience string

	// TTL is the assertion lifetime. Zero means DefaultAssertionTTL.
	TTL time.Duration
}

// DefaultAssertionTTL is the lifetime of a client assertion.
const DefaultAssertionTTL = 5 * time.Minute

// SignAssertionResult holds a signed private_key_jwt client assertion.
type SignAssertionResult struct {
	Token     string
	ExpiresAt time.Time
}

// SignAssertion signs a private_key_jwt client assertion (RFC 7523) with the
// key stored under Name.
func SignAssertion(ctx context.Context, opts SignAssertionOptions) (*SignAssertionResult, error) {
	if opts.ClientID == "" {
		return nil, fmt.Errorf("%w: client id", kerrors.ErrNilArgument)
	}
	if opts.Audience == "" {
		return nil, fmt.Errorf("%w: audience", kerrors.ErrNilArgument)
	}

	if err := store.ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if len(opts.Password) == 0 {
		return nil, fmt.Errorf("%w: password", kerrors.ErrNilArgument)
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}
	_, private, err := env.open(opts.Name, opts.Password)
	if err != nil {
		return nil, err
	}
	defer crypt.Wipe(private)

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultAssertionTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    opts.ClientID,
		Subject:   opts.ClientID,
		Audience:  jwt.ClaimStrings{opts.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	token, err := jwk.SignAssertion(string(private), claims)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpAssert)
	entry.Account = opts.Name
	entry.Backend = env.config.Storage.Backend
	audit.Log(entry)

	return &SignAssertionResult{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}
