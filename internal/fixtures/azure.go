package fixtures

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// BlobStore reads fixtures from an Azure blob container.
type BlobStore struct {
	client    *azblob.Client
	container string
}

var _ Store = (*BlobStore)(nil)

func NewBlobStore(accountName, accountKey, container string) (*BlobStore, error) {
	if accountName == "" || accountKey == "" {
		return nil, fmt.Errorf("blob fixtures need AZURE_STORAGE_ACCOUNT_NAME and AZURE_STORAGE_PRIMARY_ACCOUNT_KEY")
	}
	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared key credential: %w", err)
	}
	client, err := azblob.NewClientWithSharedKeyCredential(fmt.Sprintf("https://%s.blob.core.windows.net/", accountName), cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}
	return &BlobStore{client: client, container: container}, nil
}

func (bs *BlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	stream, err := bs.client.DownloadStream(ctx, bs.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download fixture %s: %w", key, err)
	}
	return stream.Body, nil
}

func (bs *BlobStore) Ready(ctx context.Context) error {
	_, err := bs.client.ServiceClient().NewContainerClient(bs.container).GetProperties(ctx, nil)
	if err != nil {
		return fmt.Errorf("fixture container %s: %w", bs.container, err)
	}
	return nil
}
