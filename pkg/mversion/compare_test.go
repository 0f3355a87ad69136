package mversion

import (
	"testing"
)

func TestInferScheme(t *testing.T) {
	type args struct {
		raw string
	}

	tests := []struct {
		name string
		args args
		want Scheme
	}{
		{
			name: "buildNumber",
			args: args{raw: "2020102601"},
			want: SchemeBuild,
		},
		{
			name: "longBuildNumber",
			args: args{raw: "202010260112345"},
			want: SchemeBuild,
		},
		{
			name: "branchPair",
			args: args{raw: "3.9"},
			want: SchemeBranch,
		},
		{
			name: "branchTriplet",
			args: args{raw: "3.11.2"},
			want: SchemeBranch,
		},
		{
			name: "shortNumber",
			args: args{raw: "4"},
			want: SchemeBranch,
		},
		{
			name: "garbage",
			args: args{raw: "all versions"},
			want: SchemeUnknown,
		},
		{
			name: "empty",
			args: args{raw: ""},
			want: SchemeUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferScheme(tt.args.raw)
			if got != tt.want {
				t.Errorf("InferScheme() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	type args struct {
		a      string
		b      string
		scheme Scheme
	}

	tests := []struct {
		name string
		args args
		want Ordering
	}{
		{
			name: "branchEqual",
			args: args{a: "3.9", b: "3.9", scheme: SchemeBranch},
			want: Equal,
		},
		{
			name: "branchZeroPadded",
			args: args{a: "3.9", b: "3.9.0", scheme: SchemeBranch},
			want: Equal,
		},
		{
			name: "branchNumericNotLexical",
			args: args{a: "3.9", b: "3.10", scheme: SchemeBranch},
			want: Less,
		},
		{
			name: "branchGreater",
			args: args{a: "4.2", b: "3.11", scheme: SchemeBranch},
			want: Greater,
		},
		{
			name: "branchRefusesBuildOperand",
			args: args{a: "2020102601", b: "3.9", scheme: SchemeBranch},
			want: Incomparable,
		},
		{
			name: "branchRefusesGarbage",
			args: args{a: "3.9-beta", b: "3.9", scheme: SchemeBranch},
			want: Incomparable,
		},
		{
			name: "buildLess",
			args: args{a: "2020102500", b: "2020102601", scheme: SchemeBuild},
			want: Less,
		},
		{
			name: "buildEqual",
			args: args{a: "2020102601", b: "2020102601", scheme: SchemeBuild},
			want: Equal,
		},
		{
			name: "buildGreater",
			args: args{a: "2021051700", b: "2020102601", scheme: SchemeBuild},
			want: Greater,
		},
		{
			name: "buildArbitraryLength",
			args: args{a: "99999999999999999999", b: "2020102601", scheme: SchemeBuild},
			want: Greater,
		},
		{
			name: "buildRefusesDotted",
			args: args{a: "3.9", b: "2020102601", scheme: SchemeBuild},
			want: Incomparable,
		},
		{
			name: "unknownScheme",
			args: args{a: "3.9", b: "3.9", scheme: SchemeUnknown},
			want: Incomparable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.args.a, tt.args.b, tt.args.scheme)
			if got != tt.want {
				t.Errorf("Compare() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBranch(t *testing.T) {
	type args struct {
		raw string
	}

	tests := []struct {
		name string
		args args
		want string
	}{
		{
			name: "pair",
			args: args{raw: "3.9"},
			want: "3.9",
		},
		{
			name: "triplet",
			args: args{raw: "3.9.4"},
			want: "3.9",
		},
		{
			name: "single",
			args: args{raw: "4"},
			want: "4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Branch(tt.args.raw)
			if got != tt.want {
				t.Errorf("Branch() got = %v, want %v", got, tt.want)
			}
		})
	}
}
