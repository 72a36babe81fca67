// Package ytreport builds a statistics report for a YouTube playlist.
//
// It walks every page of a playlist through the YouTube Data API v3, keeps
// only public videos, looks up their view, like and comment counts, assigns
// each video a group from its title, and writes the result as a spreadsheet.
//
// Overview
//
// A run has three stages that pass data one way:
//
//   - Walk: youtube.Walker follows nextPageToken until the last page
//   - Enrich: youtube.Enricher checks visibility, then fetches statistics
//   - Report: report.Classifier labels titles and report.Save writes the file
//
// Quick Start
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := ytreport.Generate(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d videos written to %s\n", res.Table.Len(), res.OutputPath)
//
// Configuration
//
// Settings are loaded from several sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ytreport.json or ~/.config/ytreport/ytreport.json)
//   3. Default values (lowest priority)
//
// A .env file in the working directory is loaded into the environment first.
//
// Environment variables:
//
//   - YOUTUBE_API_KEY: API key sent with every request
//   - PLAYLIST_ID: Playlist to report on
//   - YTREPORT_OUTPUT: Output path (default resultado.xlsx)
//   - YTREPORT_FORMAT: xlsx, csv or json
//   - YTREPORT_PAGE_SIZE: Playlist page size (default 25)
//   - YTREPORT_WORKERS: Concurrent enrichment workers (default 1)
//   - YTREPORT_MAX_RETRIES: Retries for 429/5xx responses (default 0)
//   - YTREPORT_INITIAL_BACKOFF, YTREPORT_MAX_BACKOFF: Retry backoff bounds
//   - YTREPORT_RPS: Request rate limit (default unlimited)
//   - YTREPORT_TIMEOUT: Per-request timeout (default none)
//   - YTREPORT_ENDPOINT: API base URL
//   - YTREPORT_LOG_LEVEL: zerolog level
//
// Error Handling
//
// Any API, decode or write error aborts the run and nothing is written.
// Missing data is not an error: hidden like or comment counts become
// "Não disponível", and a video without statistics gets empty cells.
//
//	var apiErr *ytreport.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s %s failed: %v\n", apiErr.Op, apiErr.ID, apiErr.Err)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - youtube: API client, playlist walker and enricher
//   - report: classification, table and file writers
//   - pipeline: walk, enrich and classify with optional concurrency
//   - http: API key transport with rate limiting and retries
//   - config: Configuration management
package ytreport
