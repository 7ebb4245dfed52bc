package proposta

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/arquiteto"
	"github.com/GaleriaDecor/api-arquiteto/internal/comentario"
	"github.com/GaleriaDecor/api-arquiteto/internal/comissao"
	"github.com/GaleriaDecor/api-arquiteto/internal/eventos"
	"github.com/GaleriaDecor/api-arquiteto/internal/notificacao"
	"github.com/GaleriaDecor/api-arquiteto/internal/precificacao"
	"github.com/GaleriaDecor/api-arquiteto/internal/producao"
	"github.com/GaleriaDecor/api-arquiteto/internal/rascunho"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service orquestra envio e mudanças de status. Efeitos externos (evento e
// webhook) só acontecem depois do commit.
type Service struct {
	DB          *gorm.DB
	Repository  Repository
	Arquitetos  arquiteto.Repository
	Producao    producao.Repository
	Hub         *eventos.Hub
	Notificador notificacao.Notificador
}

func NewService(db *gorm.DB, hub *eventos.Hub, n notificacao.Notificador) *Service {
	return &Service{
		DB:          db,
		Repository:  NewRepository(),
		Arquitetos:  arquiteto.NewRepository(),
		Producao:    producao.NewRepository(),
		Hub:         hub,
		Notificador: n,
	}
}

// Envio descreve uma proposta a gravar. Itens já vêm precificados.
type Envio struct {
	ArquitetoID      uint
	CriadoPorAdminID *uint
	Cliente          string
	Projeto          string
	Observacoes      string
	Itens            []rascunho.Item
	// ComoRascunho grava sem enviar: sem comissão congelada.
	ComoRascunho bool
}

func congelar(p *Proposta, taxa decimal.Decimal, agora time.Time) {
	p.Status = StatusEnviada
	p.TaxaComissao = taxa
	p.ValorComissao = precificacao.CalcularComissao(p.ValorTotal, taxa)
	p.EnviadaEm = &agora
}

// Submeter grava cabeçalho, itens, comissão e comentário numa transação.
func (s *Service) Submeter(ctx context.Context, e Envio) (*Proposta, error) {
	if len(e.Itens) == 0 {
		return nil, rascunho.ErrRascunhoVazio
	}
	db := s.DB.WithContext(ctx)

	a, err := s.Arquitetos.BuscarPorID(db, e.ArquitetoID)
	if err != nil {
		return nil, err
	}
	if !a.Aprovado() {
		return nil, ErrArquitetoInapto
	}

	p := Proposta{
		ArquitetoID:      a.ID,
		CriadoPorAdminID: e.CriadoPorAdminID,
		Manual:           e.CriadoPorAdminID != nil,
		Cliente:          e.Cliente,
		Projeto:          e.Projeto,
		Observacoes:      e.Observacoes,
		Status:           StatusRascunho,
		ValorTotal:       decimal.Zero,
		TaxaComissao:     decimal.Zero,
		ValorComissao:    decimal.Zero,
		Itens:            make([]Item, 0, len(e.Itens)),
	}
	for i, it := range e.Itens {
		p.ValorTotal = p.ValorTotal.Add(it.PrecoTotal)
		p.Itens = append(p.Itens, Item{
			Posicao:             i + 1,
			ObraID:              it.ObraID,
			ImagemPersonalizada: it.ImagemPersonalizada,
			TituloObra:          it.TituloObra,
			MolduraID:           it.MolduraID,
			AcabamentoID:        it.AcabamentoID,
			FormatoID:           it.FormatoID,
			Tamanho:             it.Tamanho,
			Quantidade:          it.Quantidade,
			PrecoUnitario:       it.PrecoUnitario,
			PrecoTotal:          it.PrecoTotal,
		})
	}
	if !e.ComoRascunho {
		congelar(&p, a.TaxaComissao, time.Now())
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	if err := s.Repository.Criar(tx, &p); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("gravar proposta: %w", err)
	}
	texto := "Proposta salva como rascunho"
	if p.Status == StatusEnviada {
		c := comissao.Nova(p.ID, p.ArquitetoID, p.ValorTotal, p.TaxaComissao)
		if err := comissao.NewRepository(tx).Create(&c); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("gravar comissão: %w", err)
		}
		texto = fmt.Sprintf("Proposta enviada: %d item(ns), total %s", len(p.Itens), precificacao.Formatar(p.ValorTotal))
	}
	if p.Manual {
		texto += " (lançamento manual)"
	}
	if err := comentario.RegistrarSistema(tx, p.ID, texto); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("gravar comentário: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	log.Printf("[proposta][service] proposta criada id=%d arquiteto=%d status=%s total=%s", p.ID, p.ArquitetoID, p.Status, p.ValorTotal)
	s.publicar(p)
	if p.Status == StatusEnviada {
		notificacao.Disparar(s.Notificador, notificacao.Evento{
			Tipo:     notificacao.EventoPropostaEnviada,
			Mensagem: fmt.Sprintf("Nova proposta #%d de %s %s para %s", p.ID, a.Nome, a.Sobrenome, p.Cliente),
			Dados:    map[string]any{"propostaId": p.ID, "arquitetoId": p.ArquitetoID, "valorTotal": p.ValorTotal.StringFixed(2)},
			Em:       time.Now(),
		})
	}
	return &p, nil
}

// AlterarStatus aplica uma transição. Preços e comissão já congelados
// nunca são recalculados.
func (s *Service) AlterarStatus(ctx context.Context, id uint, novo string, userID uint, isAdmin bool) (*Proposta, error) {
	db := s.DB.WithContext(ctx)
	p, err := s.Repository.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && p.ArquitetoID != userID {
		return nil, ErrAcessoNegado
	}
	if !PodeTransitar(p.Status, novo) {
		return nil, fmt.Errorf("%w: %s → %s", ErrTransicaoInvalida, p.Status, novo)
	}
	if novo == StatusPaga && !isAdmin {
		return nil, ErrSomenteAdmin
	}

	anterior := p.Status
	agora := time.Now()
	switch novo {
	case StatusEnviada:
		a, err := s.Arquitetos.BuscarPorID(db, p.ArquitetoID)
		if err != nil {
			return nil, err
		}
		if !a.Aprovado() {
			return nil, ErrArquitetoInapto
		}
		congelar(p, a.TaxaComissao, agora)
	case StatusPaga:
		p.Status = StatusPaga
		p.PagaEm = &agora
	case StatusCancelada:
		p.Status = StatusCancelada
		p.CanceladaEm = &agora
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	// só grava se ninguém mudou o status no meio do caminho
	res := tx.Model(&Proposta{}).
		Where("id = ? AND status = ?", p.ID, anterior).
		Updates(map[string]any{
			"status":         p.Status,
			"taxa_comissao":  p.TaxaComissao,
			"valor_comissao": p.ValorComissao,
			"enviada_em":     p.EnviadaEm,
			"paga_em":        p.PagaEm,
			"cancelada_em":   p.CanceladaEm,
		})
	if res.Error != nil {
		_ = tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%w: status mudou durante a operação", ErrTransicaoInvalida)
	}

	comissoes := comissao.NewRepository(tx)
	switch novo {
	case StatusEnviada:
		c := comissao.Nova(p.ID, p.ArquitetoID, p.ValorTotal, p.TaxaComissao)
		err = comissoes.Create(&c)
	case StatusPaga:
		if err = comissoes.UpdateStatusByProposta(p.ID, comissao.StatusAReceber); err == nil {
			_, err = s.Producao.Abrir(tx, p.ID, p.ArquitetoID, p.Observacoes)
		}
	case StatusCancelada:
		// rascunho cancelado não tem comissão
		if err = comissoes.UpdateStatusByProposta(p.ID, comissao.StatusCancelada); errors.Is(err, comissao.ErrComissaoNaoEncontrada) && anterior == StatusRascunho {
			err = nil
		}
	}
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("atualizar comissão/produção: %w", err)
	}

	autor := "arquiteto"
	if isAdmin {
		autor = "administrador"
	}
	if err := comentario.RegistrarSistema(tx, p.ID, fmt.Sprintf("Status alterado de %s para %s pelo %s", anterior, novo, autor)); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	log.Printf("[proposta][service] status alterado id=%d %s→%s por usuario=%d admin=%t", p.ID, anterior, novo, userID, isAdmin)
	s.publicar(*p)
	switch novo {
	case StatusPaga:
		notificacao.Disparar(s.Notificador, notificacao.Evento{
			Tipo:     notificacao.EventoPropostaPaga,
			Mensagem: fmt.Sprintf("Proposta #%d paga; ordem de produção aberta", p.ID),
			Dados:    map[string]any{"propostaId": p.ID, "arquitetoId": p.ArquitetoID, "valorComissao": p.ValorComissao.StringFixed(2)},
			Em:       agora,
		})
	case StatusEnviada:
		notificacao.Disparar(s.Notificador, notificacao.Evento{
			Tipo:     notificacao.EventoPropostaEnviada,
			Mensagem: fmt.Sprintf("Proposta #%d enviada para %s", p.ID, p.Cliente),
			Dados:    map[string]any{"propostaId": p.ID, "arquitetoId": p.ArquitetoID, "valorTotal": p.ValorTotal.StringFixed(2)},
			Em:       agora,
		})
	}
	return p, nil
}

func (s *Service) publicar(p Proposta) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publicar(eventos.Mudanca{PropostaID: p.ID, Status: p.Status, Em: time.Now()})
}
