package test

import (
	"errors"
	"fmt"

	"github.com/polkiloo/dealership/internal/domain/model"
	pkgAuth "github.com/polkiloo/dealership/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides. Without
// overrides tokens look like "token-<id>-<role>".
type StrategyStub struct {
	IssueFn func(model.Actor) (string, error)
	ParseFn func(string) (model.Actor, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(actor model.Actor) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(actor)
	}
	return fmt.Sprintf("token-%d-%s", actor.UserID, actor.Role), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	var (
		actor model.Actor
		role  string
	)
	if _, err := fmt.Sscanf(token, "token-%d-%s", &actor.UserID, &role); err != nil {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	actor.Role = model.Role(role)
	return actor, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Actor   model.Actor
	Err     error
	ParseFn func(string) (model.Actor, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return model.Actor{}, s.Err
	}
	return s.Actor, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
