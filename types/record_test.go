package types

import "testing"

func TestRecord_String(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		key  string
		want string
	}{
		{
			name: "string field",
			rec:  Record{"workerPoolId": "gecko-t/win10-64"},
			key:  "workerPoolId",
			want: "gecko-t/win10-64",
		},
		{
			name: "missing field",
			rec:  Record{"workerPoolId": "gecko-t/win10-64"},
			key:  "providerId",
			want: "",
		},
		{
			name: "non-string field",
			rec:  Record{"capacity": float64(4)},
			key:  "capacity",
			want: "",
		},
		{
			name: "nil record",
			rec:  nil,
			key:  "state",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.String(tt.key); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRecord_Int(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		key  string
		def  int
		want int
	}{
		{
			name: "json number",
			rec:  Record{"capacity": float64(3)},
			key:  "capacity",
			def:  1,
			want: 3,
		},
		{
			name: "go int",
			rec:  Record{"capacity": 2},
			key:  "capacity",
			def:  1,
			want: 2,
		},
		{
			name: "missing uses default",
			rec:  Record{},
			key:  "capacity",
			def:  1,
			want: 1,
		},
		{
			name: "wrong type uses default",
			rec:  Record{"capacity": "big"},
			key:  "capacity",
			def:  1,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Int(tt.key, tt.def); got != tt.want {
				t.Errorf("Int(%q, %d) = %d, want %d", tt.key, tt.def, got, tt.want)
			}
		})
	}
}

func TestRecord_Map(t *testing.T) {
	rec := Record{
		"config": map[string]any{"maxCapacity": float64(10)},
		"owner":  "releng@example.com",
	}

	cfg := rec.Map("config")
	if cfg == nil {
		t.Fatal("Map(config) = nil, want nested record")
	}
	if got := cfg.Int("maxCapacity", 0); got != 10 {
		t.Errorf("nested Int = %d, want 10", got)
	}
	if rec.Map("owner") != nil {
		t.Error("Map(owner) should be nil for a string field")
	}
}

func TestRecord_List(t *testing.T) {
	rec := Record{"launchConfigs": []any{map[string]any{"region": "us-east-1"}}}

	if got := len(rec.List("launchConfigs")); got != 1 {
		t.Errorf("List length = %d, want 1", got)
	}
	if rec.List("missing") != nil {
		t.Error("List(missing) should be nil")
	}
}
