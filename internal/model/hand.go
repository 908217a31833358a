package model

// HandID uniquely identifies a hand within a game
type HandID string

// TrickID uniquely identifies a trick within a hand
type TrickID string

// BidID uniquely identifies a bid within a hand
type BidID string

// Bid is one player's declared target for the hand. A value of zero
// denotes a pass.
type Bid struct {
	ID     BidID    `json:"id"`
	Player PlayerID `json:"player_id"`
	Value  int      `json:"bid"`
	Trump  *string  `json:"trump,omitempty"`
}

// IsPass reports whether the bid is a pass
func (b *Bid) IsPass() bool {
	return b.Value == 0
}

// Play is a single card played into a trick
type Play struct {
	Player PlayerID `json:"player_id"`
	Card   string   `json:"card"`
}

// Trick is one round of plays, one per player
type Trick struct {
	ID           TrickID   `json:"id"`
	ActivePlayer *PlayerID `json:"active_player,omitempty"`
	Plays        []Play    `json:"plays"`
}

// Complete reports whether every player has played into the trick
func (t *Trick) Complete(numPlayers int) bool {
	return numPlayers > 0 && len(t.Plays) >= numPlayers
}

func (t *Trick) clone() *Trick {
	if t == nil {
		return nil
	}
	out := *t
	if t.ActivePlayer != nil {
		v := *t.ActivePlayer
		out.ActivePlayer = &v
	}
	if t.Plays != nil {
		out.Plays = make([]Play, len(t.Plays))
		copy(out.Plays, t.Plays)
	}
	return &out
}

// Hand is one deal of cards, from bidding through the final trick.
// Cards are opaque server tokens such as "AS".
type Hand struct {
	ID       HandID    `json:"id"`
	Cards    []string  `json:"cards"`
	Bidder   *PlayerID `json:"bidder,omitempty"`
	Bids     []Bid     `json:"bids"`
	HighBid  *BidID    `json:"high_bid,omitempty"`
	Trump    *string   `json:"trump,omitempty"`
	Trick    *Trick    `json:"trick,omitempty"`
	GameOver bool      `json:"game_over"`
}

// WinningBid returns the bid referenced by HighBid, or nil
func (h *Hand) WinningBid() *Bid {
	if h.HighBid == nil {
		return nil
	}
	for i := range h.Bids {
		if h.Bids[i].ID == *h.HighBid {
			return &h.Bids[i]
		}
	}
	return nil
}

// BiddingClosed reports whether bidding has concluded, with or without
// a winner
func (h *Hand) BiddingClosed() bool {
	return h.HighBid != nil || h.Bidder != nil
}

// Clone returns a deep copy of the hand
func (h *Hand) Clone() *Hand {
	if h == nil {
		return nil
	}
	out := *h
	if h.Cards != nil {
		out.Cards = make([]string, len(h.Cards))
		copy(out.Cards, h.Cards)
	}
	if h.Bidder != nil {
		v := *h.Bidder
		out.Bidder = &v
	}
	if h.Bids != nil {
		out.Bids = make([]Bid, len(h.Bids))
		for i := range h.Bids {
			out.Bids[i] = h.Bids[i]
			if h.Bids[i].Trump != nil {
				v := *h.Bids[i].Trump
				out.Bids[i].Trump = &v
			}
		}
	}
	if h.HighBid != nil {
		v := *h.HighBid
		out.HighBid = &v
	}
	if h.Trump != nil {
		v := *h.Trump
		out.Trump = &v
	}
	out.Trick = h.Trick.clone()
	return &out
}
