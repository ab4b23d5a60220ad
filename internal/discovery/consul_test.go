package discovery

import (
	"errors"
	"testing"

	"github.com/hashicorp/consul/api"
)

func TestPickBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		services []*api.ServiceEntry
		want     string
		wantErr  error
	}{
		{
			name:    "no instances",
			wantErr: ErrNoHealthyInstance,
		},
		{
			name: "service address",
			services: []*api.ServiceEntry{
				{Node: &api.Node{Address: "10.0.0.1"}, Service: &api.AgentService{Address: "candy-api", Port: 4567}},
			},
			want: "http://candy-api:4567",
		},
		{
			name: "node address fallback",
			services: []*api.ServiceEntry{
				{Node: &api.Node{Address: "10.0.0.1"}, Service: &api.AgentService{Port: 4567}},
			},
			want: "http://10.0.0.1:4567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickBaseURL("candy-api", tt.services)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
