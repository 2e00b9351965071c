package documents

// StorageKey builds the object key "{id}-{docType}.{ext}".
func StorageKey(id string, docType DocumentType, ext string) string {
	return id + "-" + string(docType) + "." + ext
}
