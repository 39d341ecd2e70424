package conv

import "testing"

func TestSelectStrategy(t *testing.T) {
	cases := []struct {
		name              string
		fh, fw, sh, sw    int
		dh, dw, inC, outC int
		preTransformed    bool
		want              Strategy
	}{
		{"winograd", 3, 3, 1, 1, 1, 1, 16, 32, false, Winograd},
		{"winograd channel floor", 3, 3, 1, 1, 1, 1, 8, 8, false, Winograd},
		{"3x3s1 below channel floor", 3, 3, 1, 1, 1, 1, 4, 16, false, Fixed3x3S1},
		{"3x3s1 out channels low", 3, 3, 1, 1, 1, 1, 16, 7, false, Fixed3x3S1},
		{"3x3s2", 3, 3, 2, 2, 1, 1, 16, 16, false, Fixed3x3S2},
		{"1x1s1", 1, 1, 1, 1, 1, 1, 64, 64, false, Fixed1x1S1},
		{"dilated 3x3", 3, 3, 1, 1, 2, 2, 16, 16, false, GenericDirect},
		{"5x5", 5, 5, 1, 1, 1, 1, 16, 16, false, GenericDirect},
		{"1x1 stride 2", 1, 1, 2, 2, 1, 1, 64, 64, false, GenericDirect},
		{"3x3 mixed stride", 3, 3, 1, 2, 1, 1, 16, 16, false, GenericDirect},
		{"pre-transformed wins", 3, 3, 1, 1, 1, 1, 2, 2, true, Winograd},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectStrategy(tc.fh, tc.fw, tc.sh, tc.sw, tc.dh, tc.dw,
				tc.inC, tc.outC, tc.preTransformed)
			if got != tc.want {
				t.Errorf("SelectStrategy = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestWinogradOutTileSize(t *testing.T) {
	if got := WinogradOutTileSize(32, 32); got != 6 {
		t.Errorf("Tile size for 32x32 = %d, want 6", got)
	}
	if got := WinogradOutTileSize(16, 16); got != 2 {
		t.Errorf("Tile size for 16x16 = %d, want 2", got)
	}
	if got := WinogradOutTileSize(32, 16); got != 2 {
		t.Errorf("Tile size for 32x16 = %d, want 2", got)
	}
}
