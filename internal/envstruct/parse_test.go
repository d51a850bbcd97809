package envstruct_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/gymplan/internal/envstruct"
)

type storeConfig struct {
	DataFile  string `env:"GYMPLAN_DATA_FILE" envDefault:"user_data.json"`
	Store     string `env:"GYMPLAN_STORE" envDefault:"json"`
	Weeks     int    `env:"GYMPLAN_WEEKS" envDefault:"4"`
	Colors    bool   `env:"GYMPLAN_COLORS" envDefault:"true"`
	Untouched string
}

func TestPopulate(t *testing.T) {
	unset := func(_ string) (string, bool) { return "", false }

	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: unset,
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         storeConfig{},
			lookupEnv: unset,
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "pointer to non-struct",
			v:         new(string),
			lookupEnv: unset,
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name: "missing without default",
			v: &struct { //nolint:exhaustruct // populated later
				Addr string `env:"GYMPLAN_ADDR"`
			}{},
			lookupEnv: unset,
			want:      nil,
			wantErr:   envstruct.ErrEnvNotSet,
		},
		{
			name:      "defaults",
			v:         &storeConfig{},
			lookupEnv: unset,
			want: &storeConfig{
				DataFile: "user_data.json", Store: "json", Weeks: 4, Colors: true, Untouched: "",
			},
			wantErr: nil,
		},
		{
			name: "environment overrides defaults",
			v:    &storeConfig{},
			lookupEnv: func(s string) (string, bool) {
				switch s {
				case "GYMPLAN_STORE":
					return "sqlite", true
				case "GYMPLAN_WEEKS":
					return "8", true
				case "GYMPLAN_COLORS":
					return "false", true
				default:
					return "", false
				}
			},
			want: &storeConfig{
				DataFile: "user_data.json", Store: "sqlite", Weeks: 8, Colors: false, Untouched: "",
			},
			wantErr: nil,
		},
		{
			name: "picks correct env variable",
			v: &struct { //nolint:exhaustruct // populated later
				EnvVar  string `env:"ENV_VAR"`
				EnvVar2 string `env:"ENV_VAR2"`
			}{},
			lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			want: &struct {
				EnvVar  string `env:"ENV_VAR"`
				EnvVar2 string `env:"ENV_VAR2"`
			}{EnvVar: "env_var", EnvVar2: "env_var2"},
			wantErr: nil,
		},
		{
			name:      "malformed integer",
			v:         &storeConfig{},
			lookupEnv: func(s string) (string, bool) { return "many", s == "GYMPLAN_WEEKS" },
			want:      nil,
			wantErr:   envstruct.ErrParse,
		},
		{
			name: "unsupported kind",
			v: &struct { //nolint:exhaustruct // populated later
				Ratio float64 `env:"RATIO" envDefault:"0.5"`
			}{},
			lookupEnv: unset,
			want:      nil,
			wantErr:   envstruct.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Populate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Populate() unexpected error = %v", err)
				}
				if diff := cmp.Diff(tt.want, tt.v); diff != "" {
					t.Errorf("Populate() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
