// Package autoapprove implements the stateless rule matcher that lets
// low-risk, pre-authorized action classes bypass manual approval. Rules are
// declarative configuration evaluated against a completed assessment; the
// evaluator never touches persistence, so callers can consult it
// speculatively before deciding whether to open an approval request at all.
package autoapprove
