package services

import "github.com/teabag-labs/teabag-snap/internal/core/domain"

// Operation names sent to the label service.
const (
	opRefreshAuth    = "RefreshAuth"
	opGetLabelsForTx = "GetLabelsForTx"
)

var refreshAuthMutation = domain.CompactDocument(`
	mutation RefreshAuth($refreshToken: String!) {
		refreshAuth(refreshToken: $refreshToken) {
			id
			email
			token
			refreshToken
			expires
		}
	}
`)

var labelsForTxQuery = `
	query GetLabelsForTx($tx: String!) {
		labelsForTx(tx: $tx) {
			from {
				hash
				label
				orgName
			}
			to {
				hash
				label
				orgName
			}
			data {
				hash
				label
				orgName
			}
		}
	}
`
