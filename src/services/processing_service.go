package services

import (
	"time"

	"github.com/username/fasbooks/src/assembler"
	"github.com/username/fasbooks/src/classifier"
	"github.com/username/fasbooks/src/engine"
	"github.com/username/fasbooks/src/logger"
	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
	"github.com/username/fasbooks/src/visualization"
)

type processingServiceImpl struct {
	catalog    *standards.Catalog
	classifier classifier.Classifier
	engine     *engine.Engine
	assembler  assembler.Assembler
	renderer   visualization.Renderer
}

// NewProcessingService wires the pipeline components together.
func NewProcessingService(
	catalog *standards.Catalog,
	cls classifier.Classifier,
	eng *engine.Engine,
	asm assembler.Assembler,
	renderer visualization.Renderer,
) ProcessingService {
	return &processingServiceImpl{
		catalog:    catalog,
		classifier: cls,
		engine:     eng,
		assembler:  asm,
		renderer:   renderer,
	}
}

// Process runs validate -> classify -> compute -> assemble for one request.
// A rendering failure never fails the request; the result just carries
// visualization_created=false.
func (s *processingServiceImpl) Process(facts *models.TransactionFacts, visualize bool) (*models.ProcessingResult, error) {
	startTime := time.Now()

	if err := facts.Validate(); err != nil {
		return nil, err
	}

	classification, err := s.classifier.Classify(facts)
	if err != nil {
		return nil, err
	}

	out, err := s.engine.Compute(facts, classification.Standard)
	if err != nil {
		return nil, err
	}

	result, err := s.assembler.Assemble(facts, classification, out)
	if err != nil {
		return nil, err
	}

	if visualize {
		payload, renderErr := s.renderer.Render(result.ChartData)
		if renderErr != nil {
			logger.L.Warn("Visualization rendering failed",
				"transactionType", facts.TransactionType, "error", renderErr)
		} else {
			result.Visualization = payload
			result.VisualizationCreated = true
		}
	}

	logger.L.Info("Processed transaction",
		"transactionType", facts.TransactionType,
		"standardID", result.StandardInfo.StandardID,
		"entryCount", len(result.JournalEntries),
		"duration", time.Since(startTime))
	return result, nil
}

// StandardsInfo returns the catalog metadata in registration order.
func (s *processingServiceImpl) StandardsInfo() []models.StandardInfo {
	defs := s.catalog.All()
	infos := make([]models.StandardInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, models.StandardInfo{
			StandardID:          def.ID,
			StandardName:        def.Name,
			KeyTerms:            def.KeyTerms,
			RecognitionCriteria: def.RecognitionCriteria,
			MeasurementRules:    def.MeasurementRules,
		})
	}
	return infos
}
