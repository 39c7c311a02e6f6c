package tui

import "testing"

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tooSmall      bool
		queryWidth    int
		tableHeight   int
	}{
		{"standard 80x24", 80, 24, false, 29, 17},
		{"wide 200x50", 200, 50, false, 149, 43},
		{"minimum", MinWidth, MinHeight, false, minQueryCol, 3},
		{"too narrow", MinWidth - 1, 24, true, 0, 0},
		{"too short", 80, MinHeight - 1, true, 0, 0},
		{"zero", 0, 0, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.width, tt.height)
			if l.TooSmall != tt.tooSmall {
				t.Fatalf("TooSmall = %v, want %v", l.TooSmall, tt.tooSmall)
			}
			if tt.tooSmall {
				return
			}
			if l.QueryWidth != tt.queryWidth {
				t.Errorf("QueryWidth = %d, want %d", l.QueryWidth, tt.queryWidth)
			}
			if l.TableHeight != tt.tableHeight {
				t.Errorf("TableHeight = %d, want %d", l.TableHeight, tt.tableHeight)
			}
			if l.TableWidth != tt.width-borderSize {
				t.Errorf("TableWidth = %d, want %d", l.TableWidth, tt.width-borderSize)
			}
		})
	}
}
