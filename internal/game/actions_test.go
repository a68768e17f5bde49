package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sevenx777-dev/sevenxfoot/internal/career"
	"github.com/sevenx777-dev/sevenxfoot/internal/league"
	"github.com/sevenx777-dev/sevenxfoot/internal/match"
	"github.com/sevenx777-dev/sevenxfoot/internal/message"
	"github.com/sevenx777-dev/sevenxfoot/internal/transfer"
)

func TestMakeOutgoingOfferOverBudget(t *testing.T) {
	s := newGame(t)
	target := s.Market[0]

	next, err := s.MakeOutgoingOffer(target.ID, s.Club.Cash.Add(decimal.NewFromInt(1)))
	if !errors.Is(err, transfer.ErrInsufficientFunds) {
		t.Fatalf("err = %v", err)
	}
	if diff := cmp.Diff(s, next, stateOpts); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}

	next, err = s.MakeOutgoingOffer(target.ID, target.Value)
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Offers) != 1 || next.Offers[0].Week != s.Week || len(s.Offers) != 0 {
		t.Errorf("offers = %+v", next.Offers)
	}
}

func TestIncomingOfferFlow(t *testing.T) {
	s := newGame(t)
	p := s.Squad()[0]

	s = s.SetForSale(p.ID, true)
	s.Offers = []league.TransferOffer{{
		ID: uuid.New(), PlayerID: p.ID, TeamID: 2, TeamName: "Flamengo",
		Amount: decimal.NewFromInt(700_000), Status: league.OfferPending, Incoming: true,
	}}
	before := s.Clone()

	rejected := s.RejectIncomingOffer(p.ID)
	if len(rejected.Offers) != 0 {
		t.Errorf("reject kept offers: %+v", rejected.Offers)
	}

	sold := s.AcceptIncomingOffer(p.ID)
	if len(sold.Squad()) != len(s.Squad())-1 {
		t.Error("player still in squad")
	}
	if !sold.Club.Cash.Equal(s.Club.Cash.Add(decimal.NewFromInt(700_000))) {
		t.Errorf("cash = %s", sold.Club.Cash)
	}
	if len(sold.Offers) != 0 {
		t.Errorf("offers left: %+v", sold.Offers)
	}
	if diff := cmp.Diff(before, s, stateOpts); diff != "" {
		t.Errorf("receiver changed (-before +after):\n%s", diff)
	}

	if again := sold.AcceptIncomingOffer(p.ID); !again.Club.Cash.Equal(sold.Club.Cash) {
		t.Error("accepting without an offer moved cash")
	}
}

func TestManagerOffers(t *testing.T) {
	s := newGame(t)
	s.ManagerOffers = []league.ManagerOffer{
		{TeamID: 2, TeamName: "Flamengo", TeamReputation: 90, ReputationChange: 8},
		{TeamID: 3, TeamName: "Palmeiras", TeamReputation: 88, ReputationChange: 7},
	}

	rejected := s.RejectManagerOffer(2)
	if len(rejected.ManagerOffers) != 1 || rejected.ManagerOffers[0].TeamID != 3 {
		t.Errorf("reject = %+v", rejected.ManagerOffers)
	}

	moved, err := s.AcceptManagerOffer(2, testTime)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Club.ID != 2 || moved.Club.Name != "Flamengo" || moved.ManagerReputation != s.ManagerReputation+8 {
		t.Errorf("club = %+v rep = %d", moved.Club, moved.ManagerReputation)
	}
	if len(moved.ManagerOffers) != 0 {
		t.Error("offers not cleared")
	}
	if moved.Messages[0].Kind() != message.KindContract || moved.Messages[0].Title != "Nova Carreira!" {
		t.Errorf("first message = %+v", moved.Messages[0])
	}

	if _, err := rejected.AcceptManagerOffer(2, testTime); !errors.Is(err, career.ErrNoSuchOffer) {
		t.Errorf("err = %v, want ErrNoSuchOffer", err)
	}
}

func TestAcceptManagerOfferLeavesOldSquadBehind(t *testing.T) {
	s := newGame(t)
	s.ManagerOffers = []league.ManagerOffer{{TeamID: 2, TeamName: "Flamengo", TeamReputation: 90}}
	listed := s.Squad()[0]
	s = s.SetForSale(listed.ID, true)
	s.Offers = []league.TransferOffer{
		{ID: uuid.New(), PlayerID: listed.ID, TeamID: 3, Amount: listed.Value, Status: league.OfferPending, Incoming: true},
		{ID: uuid.New(), PlayerID: s.Market[0].ID, TeamID: 0, Amount: s.Market[0].Value, Status: league.OfferPending},
	}
	before := s.Clone()

	moved, err := s.AcceptManagerOffer(2, testTime)
	if err != nil {
		t.Fatal(err)
	}
	if len(moved.Offers) != 1 || moved.Offers[0].Incoming {
		t.Errorf("offers = %+v, want only the outgoing bid", moved.Offers)
	}
	for _, p := range moved.Players {
		if p.ForSale {
			t.Errorf("%s still listed after the move", p.Name)
		}
	}
	if diff := cmp.Diff(before, s, stateOpts); diff != "" {
		t.Errorf("receiver changed (-want +got):\n%s", diff)
	}
}

func TestSetFormation(t *testing.T) {
	s := newGame(t)
	next, err := s.SetFormation(league.Formation532)
	if err != nil || next.Club.Formation != league.Formation532 {
		t.Fatalf("formation = %q, err = %v", next.Club.Formation, err)
	}
	if _, err := s.SetFormation("3-5-2"); !errors.Is(err, ErrInvalidFormation) {
		t.Errorf("err = %v", err)
	}
}

func TestMarkMessageRead(t *testing.T) {
	s := newGame(t)
	id := s.Messages[0].ID

	next := s.MarkMessageRead(id)
	if !next.Messages[0].Read || next.Unread() != 0 {
		t.Error("message not marked read")
	}
	if s.Messages[0].Read {
		t.Error("receiver's inbox changed")
	}
}

func TestCloseMatchResult(t *testing.T) {
	s := newGame(t)
	s.LastResult = &match.Result{Fixture: league.Fixture{Week: 1, Home: 1, Away: 2}, HomeScore: 1}

	next := s.CloseMatchResult()
	if next.LastResult != nil {
		t.Errorf("LastResult = %+v, want nil", next.LastResult)
	}
	if s.LastResult == nil {
		t.Error("original state lost its result")
	}
}
