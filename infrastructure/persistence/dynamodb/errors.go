package dynamodb

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	pkgerrors "github.com/axthosarouris/nva-publication-api-sub001/pkg/errors"
)

// translateStoreError maps raw DynamoDB errors onto the domain error
// taxonomy. Store-level conflicts are never swallowed: conditional
// check failures always surface as ConflictError so callers can
// re-read and retry, and throttling or server faults surface as
// retryable TransientStoreError.
func translateStoreError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var conditionFailed *types.ConditionalCheckFailedException
	if errors.As(err, &conditionFailed) {
		return pkgerrors.NewConflictError("conditional write failed").WithCause(err)
	}

	var txnCanceled *types.TransactionCanceledException
	if errors.As(err, &txnCanceled) {
		for _, reason := range txnCanceled.CancellationReasons {
			if reason.Code == nil {
				continue
			}
			switch *reason.Code {
			case "ConditionalCheckFailed", "TransactionConflict":
				return pkgerrors.NewConflictError("transactional write failed").WithCause(err)
			}
		}
		return pkgerrors.NewTransientStoreError(operation, err)
	}

	var txnConflict *types.TransactionConflictException
	if errors.As(err, &txnConflict) {
		return pkgerrors.NewConflictError("transactional write failed").WithCause(err)
	}

	var throughputExceeded *types.ProvisionedThroughputExceededException
	var requestLimit *types.RequestLimitExceeded
	var internalError *types.InternalServerError
	if errors.As(err, &throughputExceeded) || errors.As(err, &requestLimit) || errors.As(err, &internalError) {
		return pkgerrors.NewTransientStoreError(operation, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ThrottlingException", "ServiceUnavailable", "InternalFailure":
			return pkgerrors.NewTransientStoreError(operation, err)
		}
	}

	return pkgerrors.NewTransientStoreError(operation, err)
}
