package fiscal

// ClassifyOperation derives the operation type from the emitter and
// recipient state codes. Codes are expected as uppercase two-letter UF
// values; the comparison is an exact match.
func ClassifyOperation(emitterState, recipientState string) OperationType {
	if emitterState == recipientState {
		return OperationInternal
	}
	return OperationInterstate
}
