package scheduler

// chunkAccounts divide a lista de contas em lotes de tamanho fixo, preservando
// a ordem. O último lote pode ser menor.
func chunkAccounts(accountIDs []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}

	batches := make([][]string, 0, (len(accountIDs)+size-1)/size)
	for start := 0; start < len(accountIDs); start += size {
		end := start + size
		if end > len(accountIDs) {
			end = len(accountIDs)
		}
		batches = append(batches, accountIDs[start:end])
	}

	return batches
}
