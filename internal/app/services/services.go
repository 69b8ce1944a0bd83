// Package services holds the business logic between the HTTP controllers and the
// repositories.
//
// Services defined in this package:
//   - RecommendationService: ranks the catalog by subject coverage or weighted grades
//   - CatalogService: browses and curates universities, courses and subjects
//   - StudentService: stores the graded results a student is matched with
//   - IngestionService: bulk create-or-skip loading of catalog exports
package services
