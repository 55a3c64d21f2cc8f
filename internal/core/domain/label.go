package domain

// Label is one named entity the label service knows for an address.
type Label struct {
	// Hash is the labelled address (or contract) as seen in the transaction.
	Hash string `json:"hash"`
	// Label is the human-readable name.
	Label string `json:"label"`
	// OrgName is the team that published the label.
	OrgName string `json:"orgName"`
}

// TxLabels holds the labels found for each part of a transaction.
type TxLabels struct {
	From []Label `json:"from"`
	To   []Label `json:"to"`
	// Data holds labels for addresses found inside the call data.
	Data []Label `json:"data"`
}

// LabelGroup is a set of labels sharing one hash.
type LabelGroup struct {
	Hash   string
	Labels []Label
}

// GroupByHash groups labels by hash, keeping the order in which each hash
// was first seen.
func GroupByHash(labels []Label) []LabelGroup {
	index := make(map[string]int)
	var groups []LabelGroup

	for _, l := range labels {
		i, ok := index[l.Hash]
		if !ok {
			i = len(groups)
			index[l.Hash] = i
			groups = append(groups, LabelGroup{Hash: l.Hash})
		}
		groups[i].Labels = append(groups[i].Labels, l)
	}

	return groups
}
