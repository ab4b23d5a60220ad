package discovery

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hashicorp/consul/api"
)

var ErrNoHealthyInstance = errors.New("no healthy instances found")

type ConsulClient struct {
	client *api.Client
}

func NewConsulClient(address string) (*ConsulClient, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &ConsulClient{client: client}, nil
}

// ResolveBaseURL picks a random healthy instance of the inventory API.
func (c *ConsulClient) ResolveBaseURL(serviceName string) (string, error) {
	services, _, err := c.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("failed to query service %s: %w", serviceName, err)
	}
	return pickBaseURL(serviceName, services)
}

func pickBaseURL(serviceName string, services []*api.ServiceEntry) (string, error) {
	if len(services) == 0 {
		return "", fmt.Errorf("%w for service %s", ErrNoHealthyInstance, serviceName)
	}

	instance := services[rand.Intn(len(services))]
	address := instance.Service.Address
	if address == "" {
		// services registered without an address inherit the node's
		address = instance.Node.Address
	}
	return fmt.Sprintf("http://%s:%d", address, instance.Service.Port), nil
}
