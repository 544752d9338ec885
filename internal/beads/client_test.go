package beads

import (
	"testing"
)

func TestNewClientSelectsBackend(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		wantCLI bool
	}{
		{name: "missing db", opts: Options{}, wantErr: true},
		{name: "default cli", opts: Options{DBPath: "/tmp/beads.db"}, wantCLI: true},
		{name: "explicit cli", opts: Options{DBPath: "/tmp/beads.db", Backend: BackendCLI, Binary: "bd"}, wantCLI: true},
		{name: "http", opts: Options{DBPath: "/tmp/beads.db", Backend: BackendHTTP, BaseURL: "http://localhost:8080"}},
		{name: "http without url", opts: Options{DBPath: "/tmp/beads.db", Backend: BackendHTTP}, wantErr: true},
		{name: "unknown", opts: Options{DBPath: "/tmp/beads.db", Backend: "carrier-pigeon"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			sc, ok := client.(*sqliteClient)
			if !ok {
				t.Fatalf("expected *sqliteClient, got %T", client)
			}
			_, isCLI := sc.writer.(*cliWriter)
			if isCLI != tt.wantCLI {
				t.Fatalf("writer = %T, wantCLI=%v", sc.writer, tt.wantCLI)
			}
			if tt.opts.Binary != "" && sc.writer.(*cliWriter).bin != tt.opts.Binary {
				t.Fatalf("binary override not applied")
			}
		})
	}
}
