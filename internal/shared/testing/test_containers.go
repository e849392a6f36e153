package testing

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type DynamoDBContainer struct {
	testcontainers.Container
	Endpoint string
}

// CreateDynamoDBContainer creates and starts a dynamodb-local container. It
// returns a DynamoDBContainer instance containing the container and the HTTP
// endpoint it listens on, or an error if the container could not be created.
//
// Parameters:
//   - ctx: The context to control the container lifecycle.
//
// Returns:
//   - *DynamoDBContainer: A struct containing the running dynamodb-local
//     container and its endpoint.
//   - error: An error if the container creation or endpoint retrieval fails.
func CreateDynamoDBContainer(ctx context.Context) (*DynamoDBContainer, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "amazon/dynamodb-local:2.5.2",
			ExposedPorts: []string{"8000/tcp"},
			WaitingFor:   wait.ForListeningPort("8000/tcp"),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	endpoint, err := container.PortEndpoint(ctx, "8000/tcp", "http")
	if err != nil {
		return nil, err
	}

	return &DynamoDBContainer{
		Container: container,
		Endpoint:  endpoint,
	}, nil
}

// NewLocalClient creates a DynamoDB client pointed at the given local
// endpoint using static throwaway credentials.
func NewLocalClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	}), nil
}

// CreatePolicyTable creates a policy table with the id string hash key and
// on-demand billing, waiting until the table is active.
func CreatePolicyTable(ctx context.Context, client *dynamodb.Client, tableName string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		AttributeDefinitions: []types.AttributeDefinition{{
			AttributeName: aws.String("id"),
			AttributeType: types.ScalarAttributeTypeS,
		}},
		KeySchema: []types.KeySchemaElement{{
			AttributeName: aws.String("id"),
			KeyType:       types.KeyTypeHash,
		}},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return err
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}, time.Minute)
}
