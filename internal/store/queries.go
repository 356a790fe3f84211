package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Listing queries.
const (
	queryUpsertListing = `
		INSERT INTO listings (
			source_id, title, source_url,
			price, shipping_price, sold_at,
			product_type, card_name, set_code, card_number,
			grading_company, grade, sealed_type,
			cleaned_title, confidence, diagnostics,
			first_seen_at, updated_at
		) VALUES (
			@source_id, @title, @source_url,
			@price, @shipping_price, @sold_at,
			@product_type, @card_name, @set_code, @card_number,
			@grading_company, @grade, @sealed_type,
			@cleaned_title, @confidence, @diagnostics,
			now(), now()
		)
		ON CONFLICT (source_id) DO UPDATE SET
			title = EXCLUDED.title,
			source_url = EXCLUDED.source_url,
			price = EXCLUDED.price,
			shipping_price = EXCLUDED.shipping_price,
			sold_at = EXCLUDED.sold_at,
			product_type = EXCLUDED.product_type,
			card_name = EXCLUDED.card_name,
			set_code = EXCLUDED.set_code,
			card_number = EXCLUDED.card_number,
			grading_company = EXCLUDED.grading_company,
			grade = EXCLUDED.grade,
			sealed_type = EXCLUDED.sealed_type,
			cleaned_title = EXCLUDED.cleaned_title,
			confidence = EXCLUDED.confidence,
			diagnostics = EXCLUDED.diagnostics,
			updated_at = now()
		RETURNING id, first_seen_at, updated_at`

	queryGetListingBySourceID = baseListingsSelect + `
		WHERE source_id = $1`

	queryGetListingByID = baseListingsSelect + `
		WHERE id = $1`

	queryListListingsPage = baseListingsSelect + `
		ORDER BY first_seen_at ASC, id ASC
		LIMIT $1 OFFSET $2`

	queryCountListings = `SELECT COUNT(*) FROM listings`
)

// Parse statistics queries.
const (
	queryStatsByProductType = `
		SELECT product_type, COUNT(*)
		FROM listings
		GROUP BY product_type`

	queryStatsByConfidence = `
		SELECT confidence, COUNT(*)
		FROM listings
		GROUP BY confidence`

	queryStatsWithDiagnostics = `
		SELECT COUNT(*)
		FROM listings
		WHERE diagnostics IS NOT NULL AND array_length(diagnostics, 1) > 0`
)

// Job run queries.
const (
	queryInsertJobRun = `
		INSERT INTO job_runs (job_name, started_at, status)
		VALUES ($1, now(), 'running')
		RETURNING id`

	queryCompleteJobRun = `
		UPDATE job_runs SET
			completed_at = now(),
			status = $2,
			error_text = $3,
			rows_affected = $4
		WHERE id = $1`

	queryListJobRuns = `
		SELECT id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		WHERE job_name = $1
		ORDER BY started_at DESC
		LIMIT $2`
)
