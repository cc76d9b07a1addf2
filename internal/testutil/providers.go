package testutil

import (
	"context"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/providers"
)

// GoodProvider returns the provided matches and quotes with no error.
type GoodProvider struct {
	Matches []matches.Match
	Quotes  []odds.Quote
}

func (p GoodProvider) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	return p.Matches, nil
}

func (p GoodProvider) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	return p.Quotes, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	return nil, providers.ErrProviderUnavailable
}

// NotifyingProvider returns matches and closes notify channel on first fetch.
type NotifyingProvider struct {
	Matches []matches.Match
	Notify  chan struct{}
}

func (p *NotifyingProvider) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	if p.Notify != nil {
		select {
		case <-p.Notify:
		default:
			close(p.Notify)
		}
	}
	return p.Matches, nil
}

func (p *NotifyingProvider) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	return []odds.Quote{}, nil
}
