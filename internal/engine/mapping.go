package engine

import "vietjobs-search/pkg/models"

// legacyMapping covers the legacy dataset. Field names are kept verbatim;
// the analyzer lowercases and strips diacritics so accented and plain
// queries both match.
var legacyMapping = []byte(`{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0,
		"analysis": {
			"analyzer": {
				"vietnamese": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			}
		}
	},
	"mappings": {
		"dynamic": true,
		"properties": {
			"Id tin": {"type": "keyword"},
			"Tiêu đề tin": {
				"type": "text",
				"analyzer": "vietnamese",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"Địa điểm tuyển dụng": {"type": "text", "analyzer": "vietnamese"},
			"Tỉnh thành tuyển dụng": {
				"type": "text",
				"analyzer": "vietnamese",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"Chức vụ": {
				"type": "text",
				"analyzer": "vietnamese",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"Hình thức làm việc": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"Ngành nghề": {
				"type": "text",
				"analyzer": "vietnamese",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"Lĩnh vực": {"type": "text", "analyzer": "vietnamese"},
			"Kinh nghiệm": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"Mức lương": {
				"type": "text",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"salary_min": {"type": "integer"},
			"salary_max": {"type": "integer"},
			"experience_min": {"type": "integer"},
			"experience_max": {"type": "integer"},
			"experience_tags": {"type": "keyword"}
		}
	}
}`)

// crawlerMapping covers the crawler dataset, including the shingle suggest
// subfield the phrase suggester runs against.
var crawlerMapping = []byte(`{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0,
		"analysis": {
			"filter": {
				"shingle_filter": {
					"type": "shingle",
					"min_shingle_size": 2,
					"max_shingle_size": 3,
					"output_unigrams": true
				}
			},
			"analyzer": {
				"vietnamese": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				},
				"vietnamese_suggest": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "shingle_filter"]
				}
			}
		}
	},
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"title": {
				"type": "text",
				"analyzer": "vietnamese",
				"fields": {
					"keyword": {"type": "keyword"},
					"suggest": {"type": "text", "analyzer": "vietnamese_suggest"}
				}
			},
			"company": {
				"type": "text",
				"analyzer": "vietnamese",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"location": {"type": "text", "analyzer": "vietnamese"},
			"location_city": {"type": "keyword"},
			"location_district": {"type": "keyword"},
			"position": {"type": "keyword"},
			"salary": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"salary_min": {"type": "integer"},
			"salary_max": {"type": "integer"},
			"is_negotiable": {"type": "boolean"},
			"work_type": {"type": "keyword"},
			"industry": {"type": "keyword"},
			"experience": {"type": "keyword"},
			"experience_min": {"type": "integer"},
			"experience_max": {"type": "integer"},
			"experience_tags": {"type": "keyword"},
			"qualifications": {"type": "keyword"},
			"description": {"type": "text", "analyzer": "vietnamese"},
			"requirements": {"type": "text", "analyzer": "vietnamese"},
			"benefits": {"type": "text", "analyzer": "vietnamese"},
			"skills": {"type": "keyword"},
			"source": {"type": "keyword"},
			"source_url": {"type": "keyword"},
			"expired_at": {"type": "date"},
			"created_at": {"type": "date"},
			"updated_at": {"type": "date"},
			"crawled_at": {"type": "date"}
		}
	}
}`)

// MappingFor returns the index settings and mappings for a variant.
func MappingFor(variant models.Variant) []byte {
	if variant == models.VariantLegacy {
		return legacyMapping
	}
	return crawlerMapping
}
