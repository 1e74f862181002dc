package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/carzilla/auth-api/internal/domain"
)

// OtpRepo manages live sign-in codes. PK: email — a Put overwrites any
// previous record for the address, so at most one code is live per identity.
type OtpRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOtpRepo(client *dynamodb.Client, tableName string) *OtpRepo {
	return &OtpRepo{client: client, tableName: tableName}
}

func (r *OtpRepo) Put(ctx context.Context, rec *domain.OtpRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OtpRepo) Get(ctx context.Context, email string) (*domain.OtpRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("otp record not found: %w", domain.ErrNotFound)
	}
	var rec domain.OtpRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *OtpRepo) Delete(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	return err
}

// IncrementAttempts atomically bumps the failure counter and returns the
// post-increment value. The ADD action serializes concurrent mismatches on
// the same record.
func (r *OtpRepo) IncrementAttempts(ctx context.Context, email string) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("email", email),
		UpdateExpression: aws.String("ADD attempts :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["attempts"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("attempts attribute missing from update response")
	}
	attempts, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("parse attempts: %w", err)
	}
	return attempts, nil
}
