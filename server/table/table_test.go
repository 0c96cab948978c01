package table

import "testing"

func TestLegalPositionsHeadsUp(t *testing.T) {
	got := LegalPositions(2)
	if len(got) != 2 || got[0] != Dealer || got[1] != BigBlind {
		t.Fatalf("heads-up positions = %v", got)
	}
	for n := 3; n <= 9; n++ {
		if len(LegalPositions(n)) != 6 {
			t.Fatalf("expected 6 positions at %d players, got %v", n, LegalPositions(n))
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		ctx  Context
		ok   bool
	}{
		{"default", Default(), true},
		{"heads-up dealer", Context{Position: Dealer, PlayerCount: 2, StackSize: 20, OpponentProfile: Bluffer}, true},
		{"heads-up small blind", Context{Position: SmallBlind, PlayerCount: 2, StackSize: 20, OpponentProfile: Standard}, false},
		{"no position", Context{PlayerCount: 6, StackSize: 100, OpponentProfile: Loose}, true},
		{"too many players", Context{PlayerCount: 10, StackSize: 100, OpponentProfile: Standard}, false},
		{"stack too deep", Context{PlayerCount: 6, StackSize: 251, OpponentProfile: Standard}, false},
		{"stack too shallow", Context{PlayerCount: 6, StackSize: 0, OpponentProfile: Standard}, false},
		{"bad profile", Context{PlayerCount: 6, StackSize: 100, OpponentProfile: "maniac"}, false},
	}
	for _, tc := range cases {
		err := tc.ctx.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error, got none", tc.name)
		}
	}
}

func TestClampResetsIllegalPosition(t *testing.T) {
	c := Context{Position: SmallBlind, PlayerCount: 2, StackSize: 100, OpponentProfile: Standard}.Clamp()
	if c.Position != NoPosition {
		t.Fatalf("expected smallBlind reset at heads-up, got %q", c.Position)
	}
	c = Context{Position: Late, PlayerCount: 99, StackSize: 9999, OpponentProfile: Standard}.Clamp()
	if c.PlayerCount != MaxPlayers || c.StackSize != MaxStack || c.Position != Late {
		t.Fatalf("unexpected clamp result: %+v", c)
	}
}
