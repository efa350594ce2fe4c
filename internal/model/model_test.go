package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "plain-date", input: `"2024-03-15"`, want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: `"2024-03-15T10:30:00Z"`, want: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{name: "offset", input: `"2024-03-15T10:30:00+09:00"`, want: time.Date(2024, 3, 15, 1, 30, 0, 0, time.UTC)},
		{name: "local-datetime", input: `"2024-03-15T10:30:00"`, want: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !d.Time.Equal(tt.want) {
				t.Fatalf("got %v, want %v", d.Time, tt.want)
			}
		})
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"15/03/2024"`), &d); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Fatalf("expected error for non-string date")
	}
}

func TestExpenseRecomputeTotal(t *testing.T) {
	e := Expense{Quantity: 2, Price: 5.5}
	e.RecomputeTotal()
	if e.TotalAmount != 11.0 {
		t.Fatalf("total = %v, want 11", e.TotalAmount)
	}
}

func TestNewProfileResponse(t *testing.T) {
	img := "avatar.png"
	res := NewProfileResponse(&User{ID: "u1", Username: "alice", Email: "alice@example.com", PasswordHash: "secret", ProfileImage: &img})

	body, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"userid":"u1","username":"alice","useremail":"alice@example.com","userprofileImage":"avatar.png"}`
	if string(body) != want {
		t.Fatalf("got %s, want %s", body, want)
	}
}
