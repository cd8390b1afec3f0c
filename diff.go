package main

// missingTranslation is a key declared in some languages of a namespace but
// absent from the listed ones.
type missingTranslation struct {
	Namespace string   `json:"namespace"`
	Key       string   `json:"key"`
	Languages []string `json:"languages"`
}

// diffLanguages returns the union of the namespace's keys across all of its
// languages, in first-seen order, and one record per key that some
// languages lack.
func diffLanguages(res resource, sep string) ([]string, []missingTranslation) {
	var union []string
	seen := make(map[string]bool)
	perLang := make([]map[string]bool, len(res.Languages))
	for i, lang := range res.Languages {
		perLang[i] = make(map[string]bool)
		for _, k := range flattenTree(lang.Tree, "", sep) {
			perLang[i][k] = true
			if !seen[k] {
				seen[k] = true
				union = append(union, k)
			}
		}
	}

	var missing []missingTranslation
	for _, k := range union {
		var langs []string
		for i, lang := range res.Languages {
			if !perLang[i][k] {
				langs = append(langs, lang.Code)
			}
		}
		if len(langs) > 0 {
			missing = append(missing, missingTranslation{Namespace: res.Namespace, Key: k, Languages: langs})
		}
	}
	return union, missing
}
