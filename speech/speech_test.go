package speech

import "testing"

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"british english", Options{Language: "en-GB", Pitch: 1.0, Rate: 1.0}, false},
		{"bare language", Options{Language: "fr", Pitch: 0.5, Rate: 4.0}, false},
		{"garbage language", Options{Language: "not a tag", Pitch: 1.0, Rate: 1.0}, true},
		{"pitch too low", Options{Language: "en-US", Pitch: 0.4, Rate: 1.0}, true},
		{"pitch too high", Options{Language: "en-US", Pitch: 2.1, Rate: 1.0}, true},
		{"rate too low", Options{Language: "en-US", Pitch: 1.0, Rate: 0.2}, true},
		{"rate too high", Options{Language: "en-US", Pitch: 1.0, Rate: 4.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
