package normalize

import "vietjobs-search/pkg/models"

// Process adds the computed numeric and tag fields to a raw job document.
// Pure and total: the input map is not mutated and the result is always a
// complete best-effort document. Crawler documents that already carry
// numeric salary fields from the crawl keep them.
func Process(doc models.JobDocument, variant models.Variant) models.JobDocument {
	out := make(models.JobDocument, len(doc)+5)
	for k, v := range doc {
		out[k] = v
	}

	if _, has := out[models.FieldSalaryMin]; !has {
		salary := ParseSalary(doc.SalaryText(variant))
		out[models.FieldSalaryMin] = salary.Min
		out[models.FieldSalaryMax] = salary.Max
	}

	if _, has := out[models.FieldExperienceTags]; !has {
		exp := ParseExperience(doc.ExperienceText(variant))
		out[models.FieldExperienceMin] = exp.Min
		out[models.FieldExperienceMax] = exp.Max
		out[models.FieldExperienceTags] = exp.Tags
	}

	return out
}

// ProcessAll runs Process over a batch.
func ProcessAll(docs []models.JobDocument, variant models.Variant) []models.JobDocument {
	out := make([]models.JobDocument, len(docs))
	for i, doc := range docs {
		out[i] = Process(doc, variant)
	}
	return out
}
