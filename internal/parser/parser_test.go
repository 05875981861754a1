package parser

import (
	"testing"

	"github.com/mwhitfield/salespipe/internal/model"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       model.Candidate
		wantReason model.RejectionReason
		wantReject bool
	}{
		{
			name: "well-formed row",
			raw:  "T018|2024-12-29|P107|USB Cable|8|173|C009|South",
			want: model.Candidate{
				TransactionID: "T018",
				Date:          "2024-12-29",
				ProductID:     "P107",
				ProductName:   "USB Cable",
				Quantity:      "8",
				UnitPrice:     "173",
				CustomerID:    "C009",
				Region:        "South",
			},
		},
		{
			name: "grouping commas stripped from numeric fields only",
			raw:  "T001|2024-01-15|P100|Cable, 2m, braided|1,250|1,099.50|C001|North",
			want: model.Candidate{
				TransactionID: "T001",
				Date:          "2024-01-15",
				ProductID:     "P100",
				ProductName:   "Cable, 2m, braided",
				Quantity:      "1250",
				UnitPrice:     "1099.50",
				CustomerID:    "C001",
				Region:        "North",
			},
		},
		{
			name:       "too few fields",
			raw:        "T001|2024-01-15|P100|Mouse|2|10|C001",
			wantReject: true,
			wantReason: model.ReasonIncompleteRow,
		},
		{
			name:       "too many fields",
			raw:        "T001|2024-01-15|P100|Mouse|2|10|C001|East|extra",
			wantReject: true,
			wantReason: model.ReasonIncompleteRow,
		},
		{
			name:       "empty line",
			raw:        "",
			wantReject: true,
			wantReason: model.ReasonIncompleteRow,
		},
		{
			name: "trailing carriage return stripped",
			raw:  "T002|2024-02-01|P101|Mouse|2|10|C002|East\r",
			want: model.Candidate{
				TransactionID: "T002",
				Date:          "2024-02-01",
				ProductID:     "P101",
				ProductName:   "Mouse",
				Quantity:      "2",
				UnitPrice:     "10",
				CustomerID:    "C002",
				Region:        "East",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate, rej := ParseLine(tt.raw, 7)

			if tt.wantReject {
				if rej == nil {
					t.Fatalf("ParseLine(%q) accepted, want rejection %q", tt.raw, tt.wantReason)
				}
				if rej.Reason != tt.wantReason {
					t.Errorf("reason = %q, want %q", rej.Reason, tt.wantReason)
				}
				if rej.LineNumber != 7 {
					t.Errorf("line number = %d, want 7", rej.LineNumber)
				}
				if rej.RawLine != tt.raw {
					t.Errorf("raw line = %q, want %q", rej.RawLine, tt.raw)
				}
				return
			}

			if rej != nil {
				t.Fatalf("ParseLine(%q) rejected with %q, want candidate", tt.raw, rej.Reason)
			}

			tt.want.RawLine = tt.raw
			tt.want.LineNumber = 7
			if candidate != tt.want {
				t.Errorf("candidate = %+v, want %+v", candidate, tt.want)
			}
		})
	}
}
