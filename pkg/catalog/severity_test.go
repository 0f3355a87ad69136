package catalog

import (
	"testing"
)

func TestParseSeverity(t *testing.T) {
	type args struct {
		raw string
	}

	tests := []struct {
		name    string
		args    args
		want    Severity
		wantErr bool
	}{
		{
			name: "canonical",
			args: args{raw: "Critical"},
			want: SeverityCritical,
		},
		{
			name: "lowercase",
			args: args{raw: "high"},
			want: SeverityHigh,
		},
		{
			name: "uppercase",
			args: args{raw: "MEDIUM"},
			want: SeverityMedium,
		},
		{
			name: "padded",
			args: args{raw: " Low "},
			want: SeverityLow,
		},
		{
			name:    "unknown",
			args:    args{raw: "Severe"},
			wantErr: true,
		},
		{
			name:    "empty",
			args:    args{raw: ""},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeverity(tt.args.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSeverity() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseSeverity() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverityRank(t *testing.T) {
	order := []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() <= order[i].Rank() {
			t.Errorf("Rank() %s (%d) not above %s (%d)",
				order[i-1], order[i-1].Rank(), order[i], order[i].Rank())
		}
	}

	if Severity("Bogus").Rank() != 0 {
		t.Errorf("Rank() of unknown severity should be 0")
	}
}
