package validation

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValidateStructAndErrorsToJson(t *testing.T) {
	type Input struct {
		Loading *bool  `validate:"required"       json:"loading"`
		Kind    string `validate:"oneof=image video" json:"kind"`
	}

	loading := true
	tests := []struct {
		name        string
		in          Input
		wantErr     bool
		wantJsonMap map[string]string
	}{
		{
			name:    "success",
			in:      Input{Loading: &loading, Kind: "image"},
			wantErr: false,
		},
		{
			name:    "missing loading",
			in:      Input{Kind: "video"},
			wantErr: true,
			wantJsonMap: map[string]string{
				"loading": "required",
			},
		},
		{
			name:    "missing loading and bad kind",
			in:      Input{Kind: "audio"},
			wantErr: true,
			wantJsonMap: map[string]string{
				"loading": "required",
				"kind":    "oneof",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			js, jerr := ErrorsToJson(err)
			if jerr != nil {
				t.Fatalf("ErrorsToJson() error = %v", jerr)
			}
			var got map[string]string
			if err := json.Unmarshal([]byte(js), &got); err != nil {
				t.Fatalf("could not unmarshal %q: %v", js, err)
			}
			if !reflect.DeepEqual(got, tt.wantJsonMap) {
				t.Errorf("errors = %v; want %v", got, tt.wantJsonMap)
			}
		})
	}
}
