package venda

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gestaosimples/api-loja/internal/cliente"
	"github.com/gestaosimples/api-loja/internal/formapagamento"
	"github.com/gestaosimples/api-loja/internal/funcionario"
	"github.com/gestaosimples/api-loja/internal/models"
	"github.com/gestaosimples/api-loja/internal/produto"

	"gorm.io/gorm"
)

// ErroValidacao indica entrada rejeitada antes de qualquer escrita.
type ErroValidacao struct {
	Mensagem string
}

func (e *ErroValidacao) Error() string { return e.Mensagem }

func erroValidacao(format string, args ...interface{}) error {
	return &ErroValidacao{Mensagem: fmt.Sprintf(format, args...)}
}

// ErrVendaCancelada é retornado ao tentar cancelar uma venda já cancelada.
// Sem essa guarda o estoque seria devolvido duas vezes.
var ErrVendaCancelada = errors.New("venda já cancelada")

func validarItens(db *gorm.DB, itens []ItemVendaInput) error {
	if len(itens) == 0 {
		return erroValidacao("informe ao menos um item")
	}
	prodRepo := produto.NewRepository()
	for i, it := range itens {
		if it.Quantidade < 1 {
			return erroValidacao("item %d: quantidade deve ser maior que zero", i+1)
		}
		if it.ValorUnitario < 0 {
			return erroValidacao("item %d: valor unitário não pode ser negativo", i+1)
		}
		if it.DescontoItem < 0 {
			return erroValidacao("item %d: desconto não pode ser negativo", i+1)
		}
		existe, err := prodRepo.Existe(db, it.ProdutoID)
		if err != nil {
			return err
		}
		if !existe {
			return erroValidacao("item %d: produto %d não encontrado", i+1, it.ProdutoID)
		}
		if it.VariacaoID != nil {
			existe, err := prodRepo.VariacaoExiste(db, *it.VariacaoID)
			if err != nil {
				return err
			}
			if !existe {
				return erroValidacao("item %d: variação %d não encontrada", i+1, *it.VariacaoID)
			}
		}
	}
	return nil
}

func totalDosItens(itens []ItemVendaInput) float64 {
	total := 0.0
	for _, it := range itens {
		total += float64(it.Quantidade)*it.ValorUnitario - it.DescontoItem
	}
	return total
}

// CriarVenda valida o carrinho e grava cabeçalho, itens e baixas de estoque
// em uma única transação. Qualquer falha desfaz tudo.
func CriarVenda(db *gorm.DB, in CriarVendaInput) (*Venda, error) {
	existe, err := cliente.NewRepository().Existe(db, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, erroValidacao("cliente %d não encontrado", in.ClienteID)
	}

	existe, err = formapagamento.NewRepository().Existe(db, in.FormaPagamentoID)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, erroValidacao("forma de pagamento %d não encontrada", in.FormaPagamentoID)
	}

	if in.FuncionarioID != nil {
		existe, err = funcionario.NewRepository().Existe(db, *in.FuncionarioID)
		if err != nil {
			return nil, err
		}
		if !existe {
			return nil, erroValidacao("funcionário %d não encontrado", *in.FuncionarioID)
		}
	}

	if err := validarItens(db, in.Itens); err != nil {
		return nil, err
	}
	if in.Desconto < 0 {
		return nil, erroValidacao("desconto não pode ser negativo")
	}

	valorFinal := totalDosItens(in.Itens) - in.Desconto
	if valorFinal < 0 {
		return nil, erroValidacao("desconto maior que o total dos itens")
	}

	prodRepo := produto.NewRepository()
	v := Venda{
		DataHora:         time.Now(),
		ClienteID:        in.ClienteID,
		FormaPagamentoID: in.FormaPagamentoID,
		FuncionarioID:    in.FuncionarioID,
		ValorTotal:       valorFinal,
		Desconto:         in.Desconto,
		Observacoes:      in.Observacoes,
		Status:           StatusAtiva,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
		for _, it := range in.Itens {
			item := ItemVenda{
				VendaID:       v.ID,
				ProdutoID:     it.ProdutoID,
				VariacaoID:    it.VariacaoID,
				Quantidade:    it.Quantidade,
				ValorUnitario: it.ValorUnitario,
				ValorTotal:    float64(it.Quantidade)*it.ValorUnitario - it.DescontoItem,
				DescontoItem:  it.DescontoItem,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if it.VariacaoID != nil {
				if err := prodRepo.BaixarEstoque(tx, *it.VariacaoID, it.Quantidade); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewRepository().BuscarPorID(db, v.ID)
}

// AtualizarVenda aplica uma atualização parcial: só os campos presentes em
// `in` são alterados. A troca de itens devolve o estoque antigo, apaga os
// itens e reaplica o carrinho novo. O efeito líquido é sempre reversão
// total seguida de aplicação nova, nunca um diff. Cada campo que mudou
// gera uma entrada de histórico.
func AtualizarVenda(db *gorm.DB, id uint, usuarioID uint, in AtualizarVendaInput) (*Venda, error) {
	var v Venda
	if err := db.Preload("Itens").Preload("FormaPagamento").First(&v, id).Error; err != nil {
		return nil, err
	}

	if in.FormaPagamentoID != nil {
		existe, err := formapagamento.NewRepository().Existe(db, *in.FormaPagamentoID)
		if err != nil {
			return nil, err
		}
		if !existe {
			return nil, erroValidacao("forma de pagamento %d não encontrada", *in.FormaPagamentoID)
		}
	}
	if in.Itens != nil {
		if err := validarItens(db, *in.Itens); err != nil {
			return nil, err
		}
	}
	if in.Desconto != nil && *in.Desconto < 0 {
		return nil, erroValidacao("desconto não pode ser negativo")
	}

	prodRepo := produto.NewRepository()
	agora := time.Now()
	var alteracoes []VendaHistorico
	atualizacoes := map[string]interface{}{}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Forma de pagamento
		if in.FormaPagamentoID != nil && *in.FormaPagamentoID != v.FormaPagamentoID {
			nomeAntigo := "N/A"
			if v.FormaPagamento != nil {
				nomeAntigo = v.FormaPagamento.Nome
			}
			nova, err := formapagamento.NewRepository().BuscarPorID(tx, *in.FormaPagamentoID)
			if err != nil {
				return err
			}
			alteracoes = append(alteracoes, VendaHistorico{
				CampoAlterado: "formaPagamento",
				ValorAnterior: strconv.FormatUint(uint64(v.FormaPagamentoID), 10),
				ValorNovo:     strconv.FormatUint(uint64(*in.FormaPagamentoID), 10),
				Descricao:     fmt.Sprintf("Forma de pagamento alterada de %s para %s", nomeAntigo, nova.Nome),
			})
			atualizacoes["forma_pagamento_id"] = *in.FormaPagamentoID
		}

		// Itens: reversão total do estoque antigo, recriação do conjunto,
		// baixa do estoque novo.
		if in.Itens != nil {
			for _, antigo := range v.Itens {
				if antigo.VariacaoID != nil {
					if err := prodRepo.DevolverEstoque(tx, *antigo.VariacaoID, antigo.Quantidade); err != nil {
						return err
					}
				}
			}
			if err := tx.Where("venda_id = ?", v.ID).Delete(&ItemVenda{}).Error; err != nil {
				return err
			}

			for _, it := range *in.Itens {
				item := ItemVenda{
					VendaID:       v.ID,
					ProdutoID:     it.ProdutoID,
					VariacaoID:    it.VariacaoID,
					Quantidade:    it.Quantidade,
					ValorUnitario: it.ValorUnitario,
					ValorTotal:    float64(it.Quantidade)*it.ValorUnitario - it.DescontoItem,
					DescontoItem:  it.DescontoItem,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				if it.VariacaoID != nil {
					if err := prodRepo.BaixarEstoque(tx, *it.VariacaoID, it.Quantidade); err != nil {
						return err
					}
				}
			}

			alteracoes = append(alteracoes, VendaHistorico{
				CampoAlterado: "itens",
				ValorAnterior: strconv.Itoa(len(v.Itens)),
				ValorNovo:     strconv.Itoa(len(*in.Itens)),
				Descricao:     "Itens da venda foram alterados",
			})

			desconto := v.Desconto
			if in.Desconto != nil {
				desconto = *in.Desconto
			}
			novoTotal := totalDosItens(*in.Itens) - desconto
			if novoTotal < 0 {
				return erroValidacao("desconto maior que o total dos itens")
			}
			atualizacoes["valor_total"] = novoTotal
		}

		// Desconto
		if in.Desconto != nil && *in.Desconto != v.Desconto {
			alteracoes = append(alteracoes, VendaHistorico{
				CampoAlterado: "desconto",
				ValorAnterior: strconv.FormatFloat(v.Desconto, 'f', -1, 64),
				ValorNovo:     strconv.FormatFloat(*in.Desconto, 'f', -1, 64),
				Descricao: fmt.Sprintf("Desconto alterado de R$ %.2f para R$ %.2f",
					v.Desconto, *in.Desconto),
			})
			atualizacoes["desconto"] = *in.Desconto

			// Sem troca de itens o total é refeito sobre os itens já gravados.
			if in.Itens == nil {
				subtotal := 0.0
				for _, it := range v.Itens {
					subtotal += it.ValorTotal
				}
				novoTotal := subtotal - *in.Desconto
				if novoTotal < 0 {
					return erroValidacao("desconto maior que o total dos itens")
				}
				atualizacoes["valor_total"] = novoTotal
			}
		}

		// Observações
		if in.Observacoes != nil && *in.Observacoes != v.Observacoes {
			alteracoes = append(alteracoes, VendaHistorico{
				CampoAlterado: "observacoes",
				ValorAnterior: v.Observacoes,
				ValorNovo:     *in.Observacoes,
				Descricao:     "Observações alteradas",
			})
			atualizacoes["observacoes"] = *in.Observacoes
		}

		// Status (Ativa <-> Cancelada). A troca por aqui não mexe no estoque;
		// reversão de estoque é papel do cancelamento.
		if in.Status != nil && *in.Status != v.Status {
			alteracoes = append(alteracoes, VendaHistorico{
				CampoAlterado: "status",
				ValorAnterior: strconv.Itoa(int(v.Status)),
				ValorNovo:     strconv.Itoa(int(*in.Status)),
				Descricao:     fmt.Sprintf("Status alterado de %s para %s", rotuloStatus(v.Status), rotuloStatus(*in.Status)),
			})
			atualizacoes["status"] = *in.Status
		}

		if len(atualizacoes) > 0 {
			if err := tx.Model(&Venda{}).Where("id = ?", v.ID).Updates(atualizacoes).Error; err != nil {
				return err
			}
		}

		for i := range alteracoes {
			alteracoes[i].VendaID = v.ID
			alteracoes[i].UsuarioID = usuarioID
			alteracoes[i].DataHora = agora
			if err := tx.Create(&alteracoes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewRepository().BuscarPorID(db, v.ID)
}

// CancelarVenda devolve o estoque de todos os itens com variação e marca a
// venda como cancelada. Cancelar duas vezes é rejeitado: a segunda reversão
// inflaria o estoque.
func CancelarVenda(db *gorm.DB, id uint) error {
	var v Venda
	if err := db.Preload("Itens").First(&v, id).Error; err != nil {
		return err
	}
	if v.Status == StatusCancelada {
		return ErrVendaCancelada
	}

	prodRepo := produto.NewRepository()
	return db.Transaction(func(tx *gorm.DB) error {
		for _, item := range v.Itens {
			if item.VariacaoID != nil {
				if err := prodRepo.DevolverEstoque(tx, *item.VariacaoID, item.Quantidade); err != nil {
					return err
				}
			}
		}
		return tx.Model(&Venda{}).Where("id = ?", v.ID).Update("status", StatusCancelada).Error
	})
}

func rotuloStatus(s models.Status) string {
	if s == StatusCancelada {
		return "Cancelada"
	}
	return "Ativa"
}
