package console

const (
	SystemName   = "RHEA-AI"
	Version      = "2.4.0-STABLE"
	CoreIdentity = "Autonomous AI Engineering Laboratory"
	NodeID       = "SECURED_NODE_43"
)
