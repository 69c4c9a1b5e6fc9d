// services/article_service.go - News articles
package services

import (
	"context"

	"liga/models"

	"gorm.io/gorm"
)

type ArticleInput struct {
	Titulo     string `json:"titulo" validate:"required,max=200"`
	Subtitulo  string `json:"subtitulo" validate:"max=300"`
	Imagem     string `json:"imagem"`
	Legenda    string `json:"legenda"`
	Texto      string `json:"texto" validate:"required"`
	Autor      string `json:"autor" validate:"required"`
	AutorImage string `json:"autorImage"`
}

type ArticleService struct {
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

// ListArticles returns articles newest first. limit <= 0 means no limit.
func (s *ArticleService) ListArticles(ctx context.Context, limit int) ([]models.Article, error) {
	var articles []models.Article
	query := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&articles).Error; err != nil {
		return nil, storeError("listar matérias", err)
	}
	return articles, nil
}

func (s *ArticleService) GetArticle(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, lookupError("matéria", id, err)
	}
	return &article, nil
}

func (s *ArticleService) CreateArticle(ctx context.Context, in ArticleInput) (*models.Article, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	article := in.toModel()
	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return nil, storeError("criar matéria", err)
	}
	return article, nil
}

func (s *ArticleService) UpdateArticle(ctx context.Context, id uint, in ArticleInput) (*models.Article, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	article, err := s.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(article).
		Select("titulo", "subtitulo", "imagem", "legenda", "texto", "autor", "autor_image").
		Updates(in.toModel()).Error
	if err != nil {
		return nil, storeError("atualizar matéria", err)
	}
	return s.GetArticle(ctx, id)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Article{}, id)
	if res.Error != nil {
		return storeError("remover matéria", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "matéria", ID: id}
	}
	return nil
}

func (in ArticleInput) toModel() *models.Article {
	return &models.Article{
		Titulo:     in.Titulo,
		Subtitulo:  in.Subtitulo,
		Imagem:     in.Imagem,
		Legenda:    in.Legenda,
		Texto:      in.Texto,
		Autor:      in.Autor,
		AutorImage: in.AutorImage,
	}
}
